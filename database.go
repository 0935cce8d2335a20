package main

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/itrackerdev/dashboard-comercial/dataset"
	"github.com/itrackerdev/dashboard-comercial/pipeline"
)

func conectaDB() (*sql.DB, error) {
	err := godotenv.Load(".env")
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar arquivo .env: %v", err)
	}

	host := os.Getenv("HOST")
	port := os.Getenv("PORT")
	user := os.Getenv("USER")
	password := os.Getenv("PASSWORD")
	dbname := os.Getenv("DATABASE")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, password, dbname)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão com banco de dados: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar com banco de dados: %v", err)
	}

	return db, nil
}

// carregarConsolidadoNoBanco sobe o snapshot consolidado de um dataset para o
// Postgres, criando a tabela a partir do cabeçalho do CSV.
func carregarConsolidadoNoBanco(db *sql.DB, cfg dataset.Config) error {
	f, err := os.Open(cfg.Snapshot)
	if err != nil {
		return fmt.Errorf("erro ao abrir consolidado %s: %v", cfg.Snapshot, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("erro ao ler cabeçalho de %s: %v", cfg.Snapshot, err)
	}

	tableName := "consolidado_" + cfg.Nome
	if err := criarTabelaConsolidado(db, tableName, header, cfg); err != nil {
		return err
	}

	colunas := make([]string, len(header))
	for i, nome := range header {
		colunas[i] = cleanColumnName(nome)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("erro ao iniciar transação: %v", err)
	}
	defer tx.Rollback()

	// Recarga completa: o snapshot já é o estado consolidado inteiro
	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", tableName)); err != nil {
		return fmt.Errorf("erro ao limpar tabela %s: %v", tableName, err)
	}

	var batch [][]string
	batchSize := 1000
	recordCount := 0

	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		batch = append(batch, record)

		if len(batch) >= batchSize {
			if err := insertBatch(tx, tableName, colunas, batch); err != nil {
				return err
			}
			recordCount += len(batch)
			fmt.Printf("\r✓ Importados %d registros...", recordCount)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := insertBatch(tx, tableName, colunas, batch); err != nil {
			return err
		}
		recordCount += len(batch)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("erro ao confirmar transação: %v", err)
	}

	fmt.Printf("\r✓ Importados %d registros de %s no total\n", recordCount, cfg.Nome)
	return nil
}

func criarTabelaConsolidado(db *sql.DB, tableName string, header []string, cfg dataset.Config) error {
	var columns []string
	for _, nome := range header {
		columns = append(columns, fmt.Sprintf("  %s %s", cleanColumnName(nome), tipoDaColuna(nome, cfg)))
	}

	createSQL := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n)",
		tableName,
		strings.Join(columns, ",\n"))

	if _, err := db.Exec(createSQL); err != nil {
		return fmt.Errorf("erro ao criar tabela %s: %v", tableName, err)
	}

	fmt.Printf("✓ Tabela '%s' pronta com %d colunas\n", tableName, len(header))
	return nil
}

// tipoDaColuna mapeia a coluna do snapshot para um tipo SQL. Diferente de um
// CSV qualquer, o snapshot tem schema conhecido: os tipos saem do Config.
func tipoDaColuna(nome string, cfg dataset.Config) string {
	switch nome {
	case pipeline.ColunaID:
		return "TEXT"
	case pipeline.ColunaAtualizacao:
		return "TIMESTAMPTZ"
	case cfg.ColunaData:
		return "DATE"
	}
	for _, q := range cfg.Quantidades {
		if nome == q {
			return "DECIMAL"
		}
	}
	if nome == cfg.ColunaTotal {
		return "DECIMAL"
	}
	return "TEXT"
}

// cleanColumnName limpa e formata o nome da coluna
func cleanColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	// Remove caracteres especiais
	var result strings.Builder
	for _, r := range name {
		switch r {
		case 'á', 'à', 'ã', 'â':
			result.WriteRune('a')
		case 'é', 'ê':
			result.WriteRune('e')
		case 'í':
			result.WriteRune('i')
		case 'ó', 'ô', 'õ':
			result.WriteRune('o')
		case 'ú':
			result.WriteRune('u')
		case 'ç':
			result.WriteRune('c')
		default:
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
				result.WriteRune(r)
			}
		}
	}
	// Colapsa underscores duplicados deixados pela limpeza
	limpo := result.String()
	for strings.Contains(limpo, "__") {
		limpo = strings.ReplaceAll(limpo, "__", "_")
	}
	return limpo
}

func insertBatch(tx *sql.Tx, tableName string, header []string, batch [][]string) error {
	if len(batch) == 0 {
		return nil
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES ",
		tableName,
		strings.Join(header, ", "))

	var values []interface{}
	for i, record := range batch {
		if i > 0 {
			query += ", "
		}
		query += "("
		for j, val := range record {
			if j > 0 {
				query += ", "
			}
			query += fmt.Sprintf("$%d", len(values)+1)
			valTrimmed := strings.TrimSpace(val)
			// Trata valores vazios como NULL
			if valTrimmed == "" {
				values = append(values, nil)
			} else {
				values = append(values, valTrimmed)
			}
		}
		query += ")"
	}

	_, err := tx.Exec(query, values...)
	if err != nil {
		return fmt.Errorf("erro ao inserir lote: %v", err)
	}
	return nil
}
