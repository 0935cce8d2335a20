// Package report agrega os registros normalizados em tabelas resumo,
// métricas de destaque e detalhamento filtrado; a parte de dados que o
// dashboard só precisa pintar.
package report

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/itrackerdev/dashboard-comercial/dataset"
	"github.com/itrackerdev/dashboard-comercial/models"
	"github.com/itrackerdev/dashboard-comercial/pipeline"
)

// ErrSemDados sinaliza que nenhuma linha sobrou para agregar. A página
// mostra "nenhum dado encontrado" em vez de uma tabela só de zeros.
var ErrSemDados = errors.New("nenhum dado encontrado para os filtros selecionados")

// Filtro restringe o detalhamento e o resumo. Datas aceitam dd/mm/aaaa ou
// AAAA-MM-DD; Valores casa coluna -> valor exato (já em maiúsculas ou não).
type Filtro struct {
	DataInicial string
	DataFinal   string
	Valores     map[string]string
}

func formatarDataExibicao(iso string) string {
	t, err := time.Parse(pipeline.FormatoData, iso)
	if err != nil {
		return "-"
	}
	return t.Format(pipeline.FormatoDataExibicao)
}

func formatarQuantidade(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// rotulosPivot monta o rótulo de coluna de cada linha juntando as colunas
// do eixo ("SP - SANTOS").
func rotulosPivot(df dataframe.DataFrame, colunas []string) []string {
	partes := make([][]string, 0, len(colunas))
	for _, nome := range colunas {
		for _, n := range df.Names() {
			if n == nome {
				partes = append(partes, df.Col(nome).Records())
				break
			}
		}
	}

	rotulos := make([]string, df.Nrow())
	for i := range rotulos {
		var pedacos []string
		for _, registros := range partes {
			pedacos = append(pedacos, registros[i])
		}
		rotulos[i] = strings.Join(pedacos, " - ")
	}
	return rotulos
}

// CriarTabelaResumo cruza data x categoria somando a quantidade do dataset.
// Linhas em ordem decrescente de data, combinações sem dado valem 0, coluna
// TOTAL por linha e linha TOTAL fechando a tabela.
func CriarTabelaResumo(df dataframe.DataFrame, cfg dataset.Config) (*models.Resumo, error) {
	return criarResumo(df, cfg, cfg.PivotColunas)
}

// CriarTabelaResumoPor permite trocar o eixo de colunas (caso cabotagem:
// por destinatário ou por remetente).
func CriarTabelaResumoPor(df dataframe.DataFrame, cfg dataset.Config, pivot []string) (*models.Resumo, error) {
	return criarResumo(df, cfg, pivot)
}

func criarResumo(df dataframe.DataFrame, cfg dataset.Config, pivot []string) (*models.Resumo, error) {
	if df.Nrow() == 0 {
		return nil, ErrSemDados
	}

	datas := df.Col(cfg.ColunaData).Records()
	valores := df.Col(cfg.ColunaValor()).Records()
	rotulos := rotulosPivot(df, pivot)

	soma := map[string]map[string]float64{}
	categorias := map[string]bool{}
	for i, data := range datas {
		if data == "" {
			continue
		}
		if soma[data] == nil {
			soma[data] = map[string]float64{}
		}
		v, _ := strconv.ParseFloat(valores[i], 64)
		soma[data][rotulos[i]] += v
		categorias[rotulos[i]] = true
	}
	if len(soma) == 0 {
		return nil, ErrSemDados
	}

	var listaDatas []string
	for data := range soma {
		listaDatas = append(listaDatas, data)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(listaDatas)))

	var listaCategorias []string
	for cat := range categorias {
		listaCategorias = append(listaCategorias, cat)
	}
	sort.Strings(listaCategorias)

	colunas := append([]string{cfg.ColunaData}, listaCategorias...)
	colunas = append(colunas, "TOTAL")

	linhas := make([][]string, 0, len(listaDatas)+1)
	totalPorCategoria := make([]float64, len(listaCategorias))
	var totalGeral float64

	for _, data := range listaDatas {
		linha := make([]string, 0, len(colunas))
		linha = append(linha, formatarDataExibicao(data))
		var totalLinha float64
		for j, cat := range listaCategorias {
			v := soma[data][cat]
			linha = append(linha, formatarQuantidade(v))
			totalLinha += v
			totalPorCategoria[j] += v
		}
		totalGeral += totalLinha
		linha = append(linha, formatarQuantidade(totalLinha))
		linhas = append(linhas, linha)
	}

	rodape := make([]string, 0, len(colunas))
	rodape = append(rodape, "TOTAL")
	for _, v := range totalPorCategoria {
		rodape = append(rodape, formatarQuantidade(v))
	}
	rodape = append(rodape, formatarQuantidade(totalGeral))
	linhas = append(linhas, rodape)

	return &models.Resumo{Colunas: colunas, Linhas: linhas}, nil
}

// CalcularMetricas produz os cartões de destaque: total de containers,
// quantidade de registros, período dos dados e contagens distintas das
// colunas de filtro.
func CalcularMetricas(df dataframe.DataFrame, cfg dataset.Config) (*models.Metricas, error) {
	if df.Nrow() == 0 {
		return nil, ErrSemDados
	}

	var total float64
	for _, v := range df.Col(cfg.ColunaValor()).Records() {
		n, _ := strconv.ParseFloat(v, 64)
		total += n
	}

	datas := df.Col(cfg.ColunaData).Records()
	minData, maxData := "", ""
	for _, d := range datas {
		if d == "" {
			continue
		}
		if minData == "" || d < minData {
			minData = d
		}
		if d > maxData {
			maxData = d
		}
	}

	distintos := map[string]int{}
	for _, coluna := range cfg.PivotColunas {
		if !contemColuna(df, coluna) {
			continue
		}
		vistos := map[string]bool{}
		for _, v := range df.Col(coluna).Records() {
			if v != "" {
				vistos[v] = true
			}
		}
		distintos[coluna] = len(vistos)
	}

	return &models.Metricas{
		Dataset:         cfg.Nome,
		TotalContainers: int64(total),
		Registros:       df.Nrow(),
		DataInicial:     formatarDataExibicao(minData),
		DataFinal:       formatarDataExibicao(maxData),
		Distintos:       distintos,
	}, nil
}

// FiltrarDetalhes aplica o período e os filtros de igualdade, devolvendo o
// subconjunto do dataframe original.
func FiltrarDetalhes(df dataframe.DataFrame, cfg dataset.Config, filtro Filtro) (dataframe.DataFrame, error) {
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, ErrSemDados
	}

	inicio := pipeline.NormalizarData(filtro.DataInicial)
	fim := pipeline.NormalizarData(filtro.DataFinal)
	datas := df.Col(cfg.ColunaData).Records()

	colunasFiltro := map[string][]string{}
	valoresFiltro := map[string]string{}
	for coluna, valor := range filtro.Valores {
		valor = strings.ToUpper(strings.TrimSpace(valor))
		if valor == "" || valor == "TODOS" || !contemColuna(df, coluna) {
			continue
		}
		colunasFiltro[coluna] = df.Col(coluna).Records()
		valoresFiltro[coluna] = valor
	}

	var manter []int
	for i := 0; i < df.Nrow(); i++ {
		if inicio != "" && datas[i] < inicio {
			continue
		}
		if fim != "" && datas[i] > fim {
			continue
		}
		ok := true
		for coluna, registros := range colunasFiltro {
			if registros[i] != valoresFiltro[coluna] {
				ok = false
				break
			}
		}
		if ok {
			manter = append(manter, i)
		}
	}
	if len(manter) == 0 {
		return dataframe.DataFrame{}, ErrSemDados
	}

	filtrado := df.Subset(manter)
	if filtrado.Error() != nil {
		return dataframe.DataFrame{}, filtrado.Error()
	}
	return filtrado, nil
}

// Detalhes monta a tabela de detalhamento com as colunas do dataset na
// ordem de exibição e datas no formato brasileiro.
func Detalhes(df dataframe.DataFrame, cfg dataset.Config, filtro Filtro) (*models.Detalhes, error) {
	filtrado, err := FiltrarDetalhes(df, cfg, filtro)
	if err != nil {
		return nil, err
	}

	var colunas []string
	for _, nome := range cfg.Detalhe {
		if contemColuna(filtrado, nome) {
			colunas = append(colunas, nome)
		}
	}
	if len(colunas) == 0 {
		colunas = filtrado.Names()
	}

	selecionado := filtrado.Select(colunas)
	if selecionado.Error() != nil {
		return nil, selecionado.Error()
	}

	registros := selecionado.Records()
	linhas := registros[1:]
	idxData := -1
	for j, nome := range colunas {
		if nome == cfg.ColunaData {
			idxData = j
			break
		}
	}
	if idxData >= 0 {
		for _, linha := range linhas {
			linha[idxData] = formatarDataExibicao(linha[idxData])
		}
	}

	return &models.Detalhes{Colunas: colunas, Linhas: linhas}, nil
}

func contemColuna(df dataframe.DataFrame, nome string) bool {
	for _, n := range df.Names() {
		if n == nome {
			return true
		}
	}
	return false
}
