package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/itrackerdev/dashboard-comercial/dataset"
	"github.com/itrackerdev/dashboard-comercial/pipeline"
	"github.com/itrackerdev/dashboard-comercial/report"
)

// corsMiddleware adiciona headers CORS para aceitar requisições de qualquer origem
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

type servidor struct {
	pipe   *pipeline.Pipeline
	config configuracao
}

func iniciarServidor(pipe *pipeline.Pipeline, config configuracao) {
	s := &servidor{pipe: pipe, config: config}

	http.HandleFunc("/api/metricas", corsMiddleware(s.metricasHandler))
	http.HandleFunc("/api/resumo", corsMiddleware(s.resumoHandler))
	http.HandleFunc("/api/detalhes", corsMiddleware(s.detalhesHandler))
	http.HandleFunc("/api/atualizar", corsMiddleware(s.atualizarHandler))
	http.HandleFunc("/api/exportar", corsMiddleware(s.exportarHandler))

	fmt.Printf("Servidor iniciado em %s\n", s.config.Porta)
	fmt.Printf("Acesse: http://localhost%s/api/metricas?dataset=importacao\n", s.config.Porta)
	http.ListenAndServe(s.config.Porta, nil)
}

// obterDataset resolve o parâmetro ?dataset= para a configuração da página.
func (s *servidor) obterDataset(w http.ResponseWriter, r *http.Request) (dataset.Config, bool) {
	nome := r.URL.Query().Get("dataset")
	cfg, ok := dataset.PorNome(nome)
	if !ok {
		http.Error(w, "Parâmetro 'dataset' deve ser importacao, exportacao ou cabotagem", http.StatusBadRequest)
		return dataset.Config{}, false
	}
	return cfg, true
}

// responderErro traduz a taxonomia de erros do pipeline em status HTTP com
// texto acionável: falha de fetch não é "sem dados", schema quebrado lista
// todas as colunas ausentes de uma vez.
func responderErro(w http.ResponseWriter, err error) {
	var fetchErr *pipeline.FetchError
	var schemaErr *pipeline.SchemaError
	switch {
	case errors.As(err, &fetchErr):
		http.Error(w, fetchErr.Error()+"; recarregue para tentar novamente", http.StatusBadGateway)
	case errors.As(err, &schemaErr):
		http.Error(w, schemaErr.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, pipeline.ErrPlanilhaVazia):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, report.ErrSemDados):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "Erro ao processar dados: "+err.Error(), http.StatusInternalServerError)
	}
}

func responderJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Erro ao codificar JSON: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *servidor) metricasHandler(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.obterDataset(w, r)
	if !ok {
		return
	}

	df, err := s.pipe.CarregarDados(r.Context(), cfg, s.config.FileIDs[cfg.Nome])
	if err != nil {
		responderErro(w, err)
		return
	}

	metricas, err := report.CalcularMetricas(df, cfg)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, metricas)
}

func (s *servidor) resumoHandler(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.obterDataset(w, r)
	if !ok {
		return
	}

	df, err := s.pipe.CarregarDados(r.Context(), cfg, s.config.FileIDs[cfg.Nome])
	if err != nil {
		responderErro(w, err)
		return
	}

	// Cabotagem alterna o eixo entre destinatário e remetente.
	pivot := cfg.PivotColunas
	if r.URL.Query().Get("por") == "remetente" && cfg.Nome == dataset.Cabotagem.Nome {
		pivot = []string{"REMETENTE - CIDADE"}
	}

	resumo, err := report.CriarTabelaResumoPor(df, cfg, pivot)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, resumo)
}

func (s *servidor) filtroDaRequisicao(r *http.Request, cfg dataset.Config) report.Filtro {
	filtro := report.Filtro{
		DataInicial: r.URL.Query().Get("dataInicial"),
		DataFinal:   r.URL.Query().Get("dataFinal"),
		Valores:     map[string]string{},
	}
	for _, coluna := range cfg.Categorias {
		if v := r.URL.Query().Get(coluna); v != "" {
			filtro.Valores[coluna] = v
		}
	}
	return filtro
}

func (s *servidor) detalhesHandler(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.obterDataset(w, r)
	if !ok {
		return
	}

	df, err := s.pipe.CarregarDados(r.Context(), cfg, s.config.FileIDs[cfg.Nome])
	if err != nil {
		responderErro(w, err)
		return
	}

	detalhes, err := report.Detalhes(df, cfg, s.filtroDaRequisicao(r, cfg))
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, detalhes)
}

func (s *servidor) atualizarHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Use POST para atualizar o consolidado", http.StatusMethodNotAllowed)
		return
	}
	cfg, ok := s.obterDataset(w, r)
	if !ok {
		return
	}

	consolidado, err := s.pipe.AtualizarConsolidado(r.Context(), cfg, s.config.FileIDs[cfg.Nome])
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, map[string]interface{}{
		"dataset":   cfg.Nome,
		"registros": consolidado.Nrow(),
	})
}

func (s *servidor) exportarHandler(w http.ResponseWriter, r *http.Request) {
	cfg, ok := s.obterDataset(w, r)
	if !ok {
		return
	}

	df, err := s.pipe.CarregarDados(r.Context(), cfg, s.config.FileIDs[cfg.Nome])
	if err != nil {
		responderErro(w, err)
		return
	}

	filtrado, err := report.FiltrarDetalhes(df, cfg, s.filtroDaRequisicao(r, cfg))
	if err != nil {
		responderErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=ISO-8859-1")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=detalhes_%s.csv", cfg.Nome))
	if err := pipeline.ExportarCSVExcel(filtrado, w); err != nil {
		fmt.Printf("Erro ao exportar detalhes de %s: %v\n", cfg.Nome, err)
	}
}
