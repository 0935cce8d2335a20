package pipeline

import (
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// NormalizarCabecalho padroniza os nomes das colunas da primeira linha com
// trim + maiúsculas, para que a validação seja insensível a caixa e espaços.
func NormalizarCabecalho(registros [][]string) [][]string {
	if len(registros) == 0 {
		return registros
	}
	for i, nome := range registros[0] {
		registros[0][i] = strings.ToUpper(strings.TrimSpace(nome))
	}
	return registros
}

// CarregarRegistros monta o dataframe com todas as colunas como texto; a
// coerção de tipos é responsabilidade do normalizador, não do parser.
func CarregarRegistros(registros [][]string) (dataframe.DataFrame, error) {
	if len(registros) <= 1 {
		return dataframe.DataFrame{}, ErrPlanilhaVazia
	}
	df := dataframe.LoadRecords(
		registros,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, df.Error()
	}
	return df, nil
}

// ValidarColunas confere a presença de todas as colunas obrigatórias e
// relata as ausentes de uma só vez.
func ValidarColunas(df dataframe.DataFrame, obrigatorias []string) error {
	presentes := make(map[string]bool, len(df.Names()))
	for _, nome := range df.Names() {
		presentes[nome] = true
	}

	var ausentes []string
	for _, nome := range obrigatorias {
		if !presentes[nome] {
			ausentes = append(ausentes, nome)
		}
	}
	if len(ausentes) > 0 {
		return &SchemaError{Ausentes: ausentes}
	}
	return nil
}
