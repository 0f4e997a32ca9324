package bitrixdomain

// ListParams são os parâmetros comuns dos métodos *.list
type ListParams struct {
	Filter map[string]any
	Select []string
	Start  int
}

// ListPage é uma página de resultados. Next é zero na última página.
type ListPage struct {
	Items []RawRecord
	Total int
	Next  int
}
