package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPlanilhaVazia indica que o download funcionou mas a planilha não tem
// nenhuma linha de dados. Condição distinta de falha de rede ou de schema.
var ErrPlanilhaVazia = errors.New("a planilha está vazia")

// FetchError representa falha de rede ou HTTP ao baixar a planilha.
// Nunca deve ser tratado como "sem dados": a página exibe o erro e oferece
// recarregar manualmente.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("erro ao baixar planilha %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SchemaError lista todas as colunas obrigatórias ausentes de uma vez,
// para que o diagnóstico saia em uma única mensagem.
type SchemaError struct {
	Ausentes []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("colunas ausentes: %s", strings.Join(e.Ausentes, ", "))
}
