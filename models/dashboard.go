package models

// Metricas são os cartões de destaque de cada página do dashboard.
type Metricas struct {
	Dataset         string         `json:"dataset"`
	TotalContainers int64          `json:"total_containers"`
	Registros       int            `json:"registros"`
	DataInicial     string         `json:"data_inicial"`
	DataFinal       string         `json:"data_final"`
	Distintos       map[string]int `json:"distintos"`
}

// Resumo é a tabela dinâmica data x categoria com coluna e linha TOTAL.
type Resumo struct {
	Colunas []string   `json:"colunas"`
	Linhas  [][]string `json:"linhas"`
}

// Detalhes é a tabela de detalhamento filtrada, pronta para exibição.
type Detalhes struct {
	Colunas []string   `json:"colunas"`
	Linhas  [][]string `json:"linhas"`
}
