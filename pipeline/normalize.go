package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/itrackerdev/dashboard-comercial/dataset"
)

// FormatoData é o formato canônico interno: ordena lexicograficamente igual
// à ordem cronológica, o que simplifica o resumo e a consolidação.
const FormatoData = "2006-01-02"

// FormatoDataExibicao é o formato brasileiro usado nas tabelas.
const FormatoDataExibicao = "02/01/2006"

var formatosAceitos = []string{
	"02/01/2006",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"01-02-06", // formato de data padrão do Excel em células sem estilo
}

// NormalizarData converte o valor bruto para AAAA-MM-DD, assumindo dia
// primeiro nos formatos ambíguos. Valor inválido vira vazio (nulo), nunca
// erro: uma linha ruim não pode derrubar a planilha inteira.
func NormalizarData(valor string) string {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return ""
	}
	for _, formato := range formatosAceitos {
		if t, err := time.Parse(formato, valor); err == nil {
			return t.Format(FormatoData)
		}
	}
	// Planilhas às vezes entregam a data como número serial do Excel
	// (dias desde 30/12/1899).
	if serial, err := strconv.ParseFloat(strings.Replace(valor, ",", ".", 1), 64); err == nil {
		if serial > 20000 && serial < 80000 {
			base := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
			return base.AddDate(0, 0, int(serial)).Format(FormatoData)
		}
	}
	return ""
}

// LimparNumero trata vírgula como separador decimal e ponto como separador
// de milhar quando os dois aparecem juntos ("1.234,50" -> 1234.5). Valor
// inválido ou negativo vira 0: as somas não podem propagar nulos.
func LimparNumero(valor string) float64 {
	valor = strings.TrimSpace(valor)
	if valor == "" {
		return 0
	}
	if strings.Contains(valor, ",") {
		valor = strings.ReplaceAll(valor, ".", "")
		valor = strings.ReplaceAll(valor, ",", ".")
	}
	n, err := strconv.ParseFloat(valor, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// formatarNumero grava o valor canônico sem zeros à direita ("15.5", "7").
// Todas as colunas ficam como texto no dataframe, igual aos consolidados do
// restante do sistema; quem agrega converte com ParseFloat.
func formatarNumero(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// normalizarCategoria padroniza textos de agrupamento ("sp", " SP " -> "SP").
func normalizarCategoria(valor string) string {
	return strings.ToUpper(strings.TrimSpace(valor))
}

func temColuna(df dataframe.DataFrame, nome string) bool {
	for _, n := range df.Names() {
		if n == nome {
			return true
		}
	}
	return false
}

// NormalizarCampos coerce coluna a coluna para os tipos canônicos do
// dataset: data (dia primeiro), quantidades (vírgula decimal, inválido = 0)
// e categorias (trim + maiúsculas). Linhas sem os campos de DropNulas são
// descartadas. Dataframe sem nenhuma linha válida vira ErrPlanilhaVazia.
func NormalizarCampos(df dataframe.DataFrame, cfg dataset.Config) (dataframe.DataFrame, error) {
	// Data de referência
	if temColuna(df, cfg.ColunaData) {
		brutos := df.Col(cfg.ColunaData).Records()
		datas := make([]string, len(brutos))
		for i, v := range brutos {
			datas[i] = NormalizarData(v)
		}
		df = df.Mutate(series.New(datas, series.String, cfg.ColunaData))
	}

	// Quantidades
	totais := make([]float64, df.Nrow())
	for _, coluna := range cfg.Quantidades {
		if !temColuna(df, coluna) {
			continue
		}
		brutos := df.Col(coluna).Records()
		valores := make([]string, len(brutos))
		for i, v := range brutos {
			n := LimparNumero(v)
			valores[i] = formatarNumero(n)
			totais[i] += n
		}
		df = df.Mutate(series.New(valores, series.String, coluna))
	}

	// Total derivado (cabotagem: C20 + C40)
	if cfg.TotalDerivado() {
		valores := make([]string, len(totais))
		for i, t := range totais {
			valores[i] = formatarNumero(t)
		}
		df = df.Mutate(series.New(valores, series.String, cfg.ColunaTotal))
	}

	// Categorias
	for _, coluna := range cfg.Categorias {
		if !temColuna(df, coluna) {
			continue
		}
		brutos := df.Col(coluna).Records()
		valores := make([]string, len(brutos))
		for i, v := range brutos {
			valores[i] = normalizarCategoria(v)
		}
		df = df.Mutate(series.New(valores, series.String, coluna))
	}

	// Descarta linhas sem os campos obrigatórios de agrupamento
	var criticas [][]string
	for _, coluna := range cfg.DropNulas {
		if temColuna(df, coluna) {
			criticas = append(criticas, df.Col(coluna).Records())
		}
	}
	var manter []int
	for i := 0; i < df.Nrow(); i++ {
		valida := true
		for _, registros := range criticas {
			if registros[i] == "" {
				valida = false
				break
			}
		}
		if valida {
			manter = append(manter, i)
		}
	}
	if len(manter) == 0 {
		return dataframe.DataFrame{}, ErrPlanilhaVazia
	}
	if len(manter) < df.Nrow() {
		df = df.Subset(manter)
	}
	if df.Error() != nil {
		return dataframe.DataFrame{}, df.Error()
	}
	return df, nil
}
