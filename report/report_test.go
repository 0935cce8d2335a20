package report

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/itrackerdev/dashboard-comercial/dataset"
)

// quadroNormalizado monta um dataframe no estado pós-pipeline: datas
// canônicas, quantidades limpas e categorias em maiúsculas.
func quadroNormalizado(t *testing.T) dataframe.DataFrame {
	t.Helper()
	df := dataframe.LoadRecords([][]string{
		{"DATA DE EMBARQUE", "DESTINATÁRIO - ESTADO", "REMETENTE - CIDADE", "QUANTIDADE TOTAL"},
		{"2024-03-01", "SP", "SANTOS", "16"},
		{"2024-03-01", "SP", "ITAJAÍ", "7"},
		{"2024-03-02", "RJ", "SANTOS", "5"},
	}, dataframe.DetectTypes(false), dataframe.DefaultType(series.String))
	if df.Error() != nil {
		t.Fatalf("erro ao montar dataframe: %v", df.Error())
	}
	return df
}

func TestCriarTabelaResumo(t *testing.T) {
	resumo, err := CriarTabelaResumo(quadroNormalizado(t), dataset.Cabotagem)
	if err != nil {
		t.Fatalf("CriarTabelaResumo: %v", err)
	}

	quer := []string{"DATA DE EMBARQUE", "RJ", "SP", "TOTAL"}
	if len(resumo.Colunas) != len(quer) {
		t.Fatalf("colunas = %v, esperado %v", resumo.Colunas, quer)
	}
	for i := range quer {
		if resumo.Colunas[i] != quer[i] {
			t.Fatalf("colunas = %v, esperado %v", resumo.Colunas, quer)
		}
	}

	// Datas decrescentes, combinações ausentes valem 0
	if len(resumo.Linhas) != 3 {
		t.Fatalf("esperadas 2 linhas de data + TOTAL, vieram %d", len(resumo.Linhas))
	}
	primeira := resumo.Linhas[0]
	if primeira[0] != "02/03/2024" || primeira[1] != "5" || primeira[2] != "0" || primeira[3] != "5" {
		t.Errorf("linha de 02/03 errada: %v", primeira)
	}
	segunda := resumo.Linhas[1]
	if segunda[0] != "01/03/2024" || segunda[1] != "0" || segunda[2] != "23" || segunda[3] != "23" {
		t.Errorf("linha de 01/03 errada: %v", segunda)
	}
	rodape := resumo.Linhas[2]
	if rodape[0] != "TOTAL" || rodape[1] != "5" || rodape[2] != "23" || rodape[3] != "28" {
		t.Errorf("rodapé errado: %v", rodape)
	}
}

func TestCriarTabelaResumoPorRemetente(t *testing.T) {
	resumo, err := CriarTabelaResumoPor(quadroNormalizado(t), dataset.Cabotagem, []string{"REMETENTE - CIDADE"})
	if err != nil {
		t.Fatalf("CriarTabelaResumoPor: %v", err)
	}

	quer := []string{"DATA DE EMBARQUE", "ITAJAÍ", "SANTOS", "TOTAL"}
	for i := range quer {
		if resumo.Colunas[i] != quer[i] {
			t.Fatalf("colunas = %v, esperado %v", resumo.Colunas, quer)
		}
	}
}

func TestCriarTabelaResumoSemDados(t *testing.T) {
	_, err := CriarTabelaResumo(dataframe.DataFrame{}, dataset.Cabotagem)
	if err != ErrSemDados {
		t.Fatalf("esperado ErrSemDados, veio %v", err)
	}
}

func TestCalcularMetricas(t *testing.T) {
	metricas, err := CalcularMetricas(quadroNormalizado(t), dataset.Cabotagem)
	if err != nil {
		t.Fatalf("CalcularMetricas: %v", err)
	}

	if metricas.TotalContainers != 28 {
		t.Errorf("total de containers = %d, esperado 28", metricas.TotalContainers)
	}
	if metricas.Registros != 3 {
		t.Errorf("registros = %d, esperado 3", metricas.Registros)
	}
	if metricas.DataInicial != "01/03/2024" || metricas.DataFinal != "02/03/2024" {
		t.Errorf("período = %s a %s", metricas.DataInicial, metricas.DataFinal)
	}
	if metricas.Distintos["DESTINATÁRIO - ESTADO"] != 2 {
		t.Errorf("estados distintos = %d, esperado 2", metricas.Distintos["DESTINATÁRIO - ESTADO"])
	}
}

func TestFiltrarDetalhes(t *testing.T) {
	df := quadroNormalizado(t)

	// Filtro de igualdade é insensível a caixa
	filtrado, err := FiltrarDetalhes(df, dataset.Cabotagem, Filtro{
		Valores: map[string]string{"DESTINATÁRIO - ESTADO": "sp"},
	})
	if err != nil {
		t.Fatalf("FiltrarDetalhes: %v", err)
	}
	if filtrado.Nrow() != 2 {
		t.Errorf("filtro por SP deveria achar 2 linhas, achou %d", filtrado.Nrow())
	}

	// Período aceita data brasileira
	filtrado, err = FiltrarDetalhes(df, dataset.Cabotagem, Filtro{DataInicial: "02/03/2024"})
	if err != nil {
		t.Fatalf("FiltrarDetalhes por período: %v", err)
	}
	if filtrado.Nrow() != 1 {
		t.Errorf("período deveria achar 1 linha, achou %d", filtrado.Nrow())
	}

	// "TODOS" não filtra nada
	filtrado, err = FiltrarDetalhes(df, dataset.Cabotagem, Filtro{
		Valores: map[string]string{"DESTINATÁRIO - ESTADO": "TODOS"},
	})
	if err != nil {
		t.Fatalf("FiltrarDetalhes com TODOS: %v", err)
	}
	if filtrado.Nrow() != 3 {
		t.Errorf("TODOS deveria manter as 3 linhas, manteve %d", filtrado.Nrow())
	}
}

func TestFiltrarDetalhesSemResultado(t *testing.T) {
	_, err := FiltrarDetalhes(quadroNormalizado(t), dataset.Cabotagem, Filtro{
		Valores: map[string]string{"DESTINATÁRIO - ESTADO": "AM"},
	})
	if err != ErrSemDados {
		t.Fatalf("esperado ErrSemDados, veio %v", err)
	}
}

func TestDetalhes(t *testing.T) {
	detalhes, err := Detalhes(quadroNormalizado(t), dataset.Cabotagem, Filtro{})
	if err != nil {
		t.Fatalf("Detalhes: %v", err)
	}

	if len(detalhes.Linhas) != 3 {
		t.Fatalf("esperadas 3 linhas, vieram %d", len(detalhes.Linhas))
	}

	// A data sai no formato brasileiro
	idxData := -1
	for j, nome := range detalhes.Colunas {
		if nome == "DATA DE EMBARQUE" {
			idxData = j
			break
		}
	}
	if idxData < 0 {
		t.Fatal("coluna de data deveria estar no detalhamento")
	}
	if detalhes.Linhas[0][idxData] != "01/03/2024" && detalhes.Linhas[0][idxData] != "02/03/2024" {
		t.Errorf("data não formatada: %q", detalhes.Linhas[0][idxData])
	}
}
