package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/itrackerdev/dashboard-comercial/dataset"
)

func configConsolidacao(t *testing.T) dataset.Config {
	t.Helper()
	return dataset.Config{
		Nome:       "teste",
		ColunaData: "DATA",
		ChaveUnica: []string{"NAVIO", "VIAGEM"},
		Snapshot:   filepath.Join(t.TempDir(), "consolidado_teste.csv"),
	}
}

func loteConsolidacao(t *testing.T, linhas ...[]string) dataframe.DataFrame {
	t.Helper()
	registros := [][]string{{"DATA", "NAVIO", "VIAGEM", "CARGA"}}
	registros = append(registros, linhas...)
	df := dataframe.LoadRecords(registros,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		t.Fatalf("erro ao montar lote: %v", df.Error())
	}
	return df
}

func TestConsolidarPrimeiroLote(t *testing.T) {
	cfg := configConsolidacao(t)
	lote := loteConsolidacao(t,
		[]string{"2024-03-01", "NAVIO A", "V1", "AÇO"},
		[]string{"2024-03-05", "NAVIO B", "V2", "GRÃOS"},
	)

	resultado, err := Consolidar(lote, cfg, time.Now())
	if err != nil {
		t.Fatalf("Consolidar: %v", err)
	}
	if resultado.Nrow() != 2 {
		t.Fatalf("esperadas 2 linhas, vieram %d", resultado.Nrow())
	}

	// Ordem decrescente de data
	datas := resultado.Col("DATA").Records()
	if datas[0] != "2024-03-05" || datas[1] != "2024-03-01" {
		t.Errorf("linhas fora de ordem: %v", datas)
	}

	if !temColuna(resultado, ColunaID) || !temColuna(resultado, ColunaAtualizacao) {
		t.Error("consolidado deveria ter ID_UNICO e DATA_ATUALIZACAO")
	}

	if _, err := os.Stat(cfg.Snapshot); err != nil {
		t.Errorf("snapshot não foi gravado: %v", err)
	}
}

func TestConsolidarMesclaComAnterior(t *testing.T) {
	cfg := configConsolidacao(t)
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	primeiro := loteConsolidacao(t,
		[]string{"2024-03-01", "NAVIO A", "V1", "AÇO"},
		[]string{"2024-03-02", "NAVIO B", "V2", "GRÃOS"},
	)
	if _, err := Consolidar(primeiro, cfg, base); err != nil {
		t.Fatalf("primeira consolidação: %v", err)
	}

	// NAVIO A/V1 reaparece com data mais nova; NAVIO C/V3 é inédito.
	segundo := loteConsolidacao(t,
		[]string{"2024-03-08", "NAVIO A", "V1", "AÇO"},
		[]string{"2024-03-03", "NAVIO C", "V3", "CELULOSE"},
	)
	resultado, err := Consolidar(segundo, cfg, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("segunda consolidação: %v", err)
	}

	if resultado.Nrow() != 3 {
		t.Fatalf("esperadas 3 linhas (2 antigas, 1 substituída, 1 nova), vieram %d", resultado.Nrow())
	}

	navios := resultado.Col("NAVIO").Records()
	datas := resultado.Col("DATA").Records()
	for i, navio := range navios {
		if navio == "NAVIO A" && datas[i] != "2024-03-08" {
			t.Errorf("NAVIO A deveria ficar com a data mais recente, veio %s", datas[i])
		}
	}
}

func TestConsolidarEmpateVenceLoteMaisNovo(t *testing.T) {
	cfg := configConsolidacao(t)
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	primeiro := loteConsolidacao(t, []string{"2024-03-01", "NAVIO A", "V1", "AÇO"})
	if _, err := Consolidar(primeiro, cfg, base); err != nil {
		t.Fatalf("primeira consolidação: %v", err)
	}

	// Mesma chave, mesma data, carga corrigida: o lote mais novo vence.
	segundo := loteConsolidacao(t, []string{"2024-03-01", "NAVIO A", "V1", "AÇO CORRIGIDO"})
	resultado, err := Consolidar(segundo, cfg, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("segunda consolidação: %v", err)
	}

	if resultado.Nrow() != 1 {
		t.Fatalf("esperada 1 linha, vieram %d", resultado.Nrow())
	}
	if carga := resultado.Col("CARGA").Records()[0]; carga != "AÇO CORRIGIDO" {
		t.Errorf("deveria manter o lote mais novo, veio %q", carga)
	}
}

func TestConsolidarSnapshotCorrompido(t *testing.T) {
	cfg := configConsolidacao(t)
	if err := os.WriteFile(cfg.Snapshot, []byte("A,B\nsó um campo\nx,y,z\n"), 0644); err != nil {
		t.Fatal(err)
	}

	lote := loteConsolidacao(t, []string{"2024-03-01", "NAVIO A", "V1", "AÇO"})
	resultado, err := Consolidar(lote, cfg, time.Now())
	if err != nil {
		t.Fatalf("Consolidar com snapshot corrompido: %v", err)
	}
	if resultado.Nrow() != 1 {
		t.Fatalf("deveria começar do zero com 1 linha, vieram %d", resultado.Nrow())
	}
}

func TestConsolidarLoteVazio(t *testing.T) {
	cfg := configConsolidacao(t)
	_, err := Consolidar(dataframe.DataFrame{}, cfg, time.Now())
	if err != ErrPlanilhaVazia {
		t.Fatalf("esperado ErrPlanilhaVazia, veio %v", err)
	}
}
