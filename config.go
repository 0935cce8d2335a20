package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/itrackerdev/dashboard-comercial/dataset"
	"github.com/itrackerdev/dashboard-comercial/pipeline"
)

// configuracao reúne o que vem do .env: os ids das planilhas no Drive,
// o timeout de download e a porta do servidor.
type configuracao struct {
	FileIDs map[string]string
	Timeout time.Duration
	Porta   string
}

func carregarConfiguracao() configuracao {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("Arquivo .env não encontrado; usando variáveis de ambiente do processo.")
	}

	cfg := configuracao{
		FileIDs: map[string]string{},
		Timeout: pipeline.TimeoutPadrao,
		Porta:   ":8080",
	}
	for _, d := range dataset.Todos() {
		cfg.FileIDs[d.Nome] = os.Getenv(d.EnvArquivo)
	}
	if s := os.Getenv("HTTP_TIMEOUT_SEGUNDOS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}
	if p := os.Getenv("PORTA"); p != "" {
		cfg.Porta = ":" + p
	}
	return cfg
}
