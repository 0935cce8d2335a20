package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ExportarCSVExcel grava o dataframe como CSV separado por ponto e vírgula
// em ISO8859-1, o formato que o Excel em português abre sem configurar
// nada. Caracteres fora do Latin-1 são substituídos em vez de derrubar a
// exportação.
func ExportarCSVExcel(df dataframe.DataFrame, w io.Writer) error {
	codificador := transform.NewWriter(w, encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()))
	escritor := csv.NewWriter(codificador)
	escritor.Comma = ';'

	for _, linha := range df.Records() {
		if err := escritor.Write(linha); err != nil {
			return fmt.Errorf("erro ao escrever CSV: %w", err)
		}
	}
	escritor.Flush()
	if err := escritor.Error(); err != nil {
		return fmt.Errorf("erro ao escrever CSV: %w", err)
	}
	return codificador.Close()
}
