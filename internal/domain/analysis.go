package domain

// AnalysisResult es la interpretación narrativa devuelta por el LLM.
// Las cuatro secciones son obligatorias; el texto trae énfasis inline (**...**).
type AnalysisResult struct {
	Nickname string `json:"nickname"`
	Traits   string `json:"traits"`
	Jobs     string `json:"jobs"`
	Partner  string `json:"partner"`
}
