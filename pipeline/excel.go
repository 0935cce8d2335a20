package pipeline

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LerPlanilha abre um workbook xlsx em memória e devolve as linhas da
// primeira aba como registros de texto. Linhas mais curtas que o cabeçalho
// são completadas com campos vazios (o excelize corta células vazias no fim).
func LerPlanilha(conteudo []byte) ([][]string, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(conteudo))
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha: %w", err)
	}
	defer wb.Close()

	aba := wb.GetSheetName(0)
	if aba == "" {
		return nil, fmt.Errorf("planilha sem abas")
	}

	linhas, err := wb.GetRows(aba)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler aba %q: %w", aba, err)
	}
	if len(linhas) == 0 {
		return nil, ErrPlanilhaVazia
	}

	largura := len(linhas[0])
	for i, linha := range linhas {
		if len(linha) < largura {
			completa := make([]string, largura)
			copy(completa, linha)
			linhas[i] = completa
		} else if len(linha) > largura {
			linhas[i] = linha[:largura]
		}
	}
	return linhas, nil
}
