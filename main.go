package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/itrackerdev/dashboard-comercial/cache"
	"github.com/itrackerdev/dashboard-comercial/dataset"
	"github.com/itrackerdev/dashboard-comercial/pipeline"
	"github.com/itrackerdev/dashboard-comercial/report"
)

func main() {
	config := carregarConfiguracao()
	pipe := pipeline.Nova(pipeline.NovoFetcher(config.Timeout), cache.Nova(cache.TTLPadrao))

	for {
		fmt.Println("Selecione uma opção:")
		fmt.Println("1 - Atualizar consolidado de importação")
		fmt.Println("2 - Atualizar consolidado de exportação")
		fmt.Println("3 - Atualizar consolidado de cabotagem")
		fmt.Println("4 - Atualizar todos os consolidados")
		fmt.Println("5 - Iniciar servidor do dashboard")
		fmt.Println("6 - Carregar consolidados no banco de dados")
		fmt.Println("7 - Exportar detalhamento em CSV")
		fmt.Println("0 - Sair")
		fmt.Print("Digite 0, 1, 2, 3, 4, 5, 6 ou 7: ")

		var escolha int
		_, err := fmt.Scan(&escolha)
		if err != nil {
			fmt.Println("Erro ao ler opção:", err)
			return
		}

		switch escolha {
		case 1:
			atualizarDataset(pipe, config, dataset.Importacao)
		case 2:
			atualizarDataset(pipe, config, dataset.Exportacao)
		case 3:
			atualizarDataset(pipe, config, dataset.Cabotagem)
		case 4:
			atualizarTodos(pipe, config)
		case 5:
			iniciarServidor(pipe, config)
		case 6:
			carregarTodosNoBanco()
		case 7:
			exportarDetalhamento(pipe, config)
		case 0:
			fmt.Println("Encerrando.")
			return
		default:
			fmt.Println("Opção inválida.")
		}
	}
}

func atualizarDataset(pipe *pipeline.Pipeline, config configuracao, cfg dataset.Config) {
	fmt.Printf("Atualizando consolidado de %s...\n", cfg.Nome)
	df, err := pipe.AtualizarConsolidado(context.Background(), cfg, config.FileIDs[cfg.Nome])
	if err != nil {
		fmt.Printf("Erro ao atualizar %s: %v\n", cfg.Nome, err)
		return
	}
	fmt.Printf("Consolidado de %s atualizado: %d registros em %s\n", cfg.Nome, df.Nrow(), cfg.Snapshot)
}

// atualizarTodos roda os três datasets em paralelo, limitado por semáforo.
func atualizarTodos(pipe *pipeline.Pipeline, config configuracao) {
	maxWorkers := 2
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, cfg := range dataset.Todos() {
		wg.Add(1)
		go func(cfg dataset.Config) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			atualizarDataset(pipe, config, cfg)
		}(cfg)
	}

	wg.Wait()
	fmt.Println("Todos os consolidados atualizados.")
}

func carregarTodosNoBanco() {
	db, err := conectaDB()
	if err != nil {
		fmt.Println("Erro ao conectar no banco:", err)
		return
	}
	defer db.Close()

	for _, cfg := range dataset.Todos() {
		if err := carregarConsolidadoNoBanco(db, cfg); err != nil {
			fmt.Printf("Erro ao carregar %s no banco: %v\n", cfg.Nome, err)
		}
	}
}

func exportarDetalhamento(pipe *pipeline.Pipeline, config configuracao) {
	fmt.Print("Dataset (importacao, exportacao ou cabotagem): ")
	var nome string
	if _, err := fmt.Scan(&nome); err != nil {
		fmt.Println("Erro ao ler dataset:", err)
		return
	}
	cfg, ok := dataset.PorNome(nome)
	if !ok {
		fmt.Println("Dataset desconhecido:", nome)
		return
	}

	df, err := pipe.CarregarDados(context.Background(), cfg, config.FileIDs[cfg.Nome])
	if err != nil {
		fmt.Printf("Erro ao carregar %s: %v\n", cfg.Nome, err)
		return
	}

	filtrado, err := report.FiltrarDetalhes(df, cfg, report.Filtro{})
	if err != nil {
		fmt.Printf("Erro ao filtrar %s: %v\n", cfg.Nome, err)
		return
	}

	caminho := fmt.Sprintf("detalhes_%s.csv", cfg.Nome)
	f, err := os.Create(caminho)
	if err != nil {
		fmt.Println("Erro ao criar arquivo:", err)
		return
	}
	defer f.Close()

	if err := pipeline.ExportarCSVExcel(filtrado, f); err != nil {
		fmt.Println("Erro ao exportar CSV:", err)
		return
	}
	fmt.Printf("Detalhamento exportado para %s (%d registros)\n", caminho, filtrado.Nrow())
}
