package dataset

import "fmt"

// Config descreve um conjunto de dados do dashboard (importação, exportação,
// cabotagem). As três páginas compartilham o mesmo pipeline; tudo que varia
// entre elas mora aqui.
type Config struct {
	Nome string

	// EnvArquivo é a variável de ambiente com o id do arquivo no Drive.
	EnvArquivo  string
	URLTemplate string

	// ColunaData é a data de embarque/chegada usada no agrupamento.
	ColunaData   string
	Obrigatorias []string

	// Quantidades são convertidas para número (vírgula decimal, inválido = 0).
	Quantidades []string
	// ColunaTotal, quando diferente de uma coluna de quantidade, é derivada
	// como a soma das quantidades (caso cabotagem: C20 + C40).
	ColunaTotal string

	// Categorias são normalizadas com trim + maiúsculas para agrupamento.
	Categorias []string

	// DropNulas: linhas com essas colunas vazias após normalização são descartadas.
	DropNulas []string

	// ChaveUnica é a tupla ordenada de campos de negócio que identifica um
	// embarque; o ID_UNICO é o hash do join desses valores.
	ChaveUnica []string

	// PivotColunas formam o eixo de colunas da tabela resumo.
	PivotColunas []string

	// Detalhe são as colunas exibidas na tabela de detalhamento.
	Detalhe []string

	Snapshot string
}

// URL monta a URL de exportação da planilha para o file id informado.
func (c Config) URL(fileID string) string {
	return fmt.Sprintf(c.URLTemplate, fileID)
}

// ColunaValor retorna a coluna somada nas agregações.
func (c Config) ColunaValor() string {
	if c.ColunaTotal != "" {
		return c.ColunaTotal
	}
	return c.Quantidades[0]
}

// TotalDerivado indica se a coluna de total precisa ser calculada.
func (c Config) TotalDerivado() bool {
	if c.ColunaTotal == "" {
		return false
	}
	for _, q := range c.Quantidades {
		if q == c.ColunaTotal {
			return false
		}
	}
	return true
}

var Importacao = Config{
	Nome:        "importacao",
	EnvArquivo:  "PLANILHA_IMPORTACAO",
	URLTemplate: "https://drive.google.com/uc?id=%s",
	ColunaData:  "ETA",
	Obrigatorias: []string{
		"ETA", "UF CONSIGNATÁRIO", "PORTO DESCARGA", "QTDE CONTAINER",
	},
	Quantidades: []string{"QTDE CONTAINER"},
	Categorias: []string{
		"UF CONSIGNATÁRIO", "PORTO DESCARGA", "ARMADOR", "CONSIGNATARIO FINAL",
		"CONSOLIDADOR", "CONSIGNATÁRIO", "TERMINAL DESCARGA", "NOME EXPORTADOR",
		"AGENTE INTERNACIONAL", "NAVIO", "PAÍS ORIGEM", "PORTO ORIGEM",
	},
	DropNulas: []string{"ETA", "UF CONSIGNATÁRIO", "PORTO DESCARGA"},
	ChaveUnica: []string{
		"ETA", "PORTO ORIGEM", "PORTO DESCARGA", "NAVIO", "ARMADOR",
		"NOME EXPORTADOR", "CONSIGNATÁRIO",
	},
	PivotColunas: []string{"UF CONSIGNATÁRIO", "PORTO DESCARGA"},
	Detalhe: []string{
		"ETA", "CONSIGNATARIO FINAL", "CONSOLIDADOR", "CONSIGNATÁRIO",
		"TERMINAL DESCARGA", "NOME EXPORTADOR", "ARMADOR",
		"AGENTE INTERNACIONAL", "NAVIO", "PAÍS ORIGEM", "PORTO ORIGEM",
		"UF CONSIGNATÁRIO", "PORTO DESCARGA", "QTDE CONTAINER",
	},
	Snapshot: "dados_importacao_consolidados.csv",
}

var Exportacao = Config{
	Nome:        "exportacao",
	EnvArquivo:  "PLANILHA_EXPORTACAO",
	URLTemplate: "https://drive.google.com/uc?id=%s",
	ColunaData:  "DATA EMBARQUE",
	Obrigatorias: []string{
		"DATA EMBARQUE", "ESTADO EXPORTADOR", "QTDE CONTEINER", "PORTO EMBARQUE",
	},
	Quantidades: []string{"QTDE CONTEINER"},
	Categorias: []string{
		"ESTADO EXPORTADOR", "PORTO EMBARQUE", "NOME EXPORTADOR", "ARMADOR",
		"NAVIO", "PORTO DE ORIGEM", "TERMINAL EMBARQUE", "PORTO DESCARGA",
		"PORTO DE DESTINO", "PAÍS DE DESTINO", "CIDADE EXPORTADOR",
	},
	DropNulas: []string{"DATA EMBARQUE", "ESTADO EXPORTADOR", "PORTO EMBARQUE"},
	ChaveUnica: []string{
		"DATA EMBARQUE", "PORTO DE ORIGEM", "PORTO DE DESTINO", "NAVIO",
		"NOME EXPORTADOR", "ARMADOR", "PAÍS DE DESTINO",
	},
	PivotColunas: []string{"ESTADO EXPORTADOR", "PORTO EMBARQUE"},
	Detalhe: []string{
		"DATA EMBARQUE", "NOME EXPORTADOR", "NAVIO", "PORTO DE ORIGEM",
		"PORTO EMBARQUE", "TERMINAL EMBARQUE", "PORTO DESCARGA",
		"PORTO DE DESTINO", "PAÍS DE DESTINO", "CIDADE EXPORTADOR",
		"ESTADO EXPORTADOR", "ARMADOR", "QTDE CONTEINER",
	},
	Snapshot: "dados_exportacao_consolidados.csv",
}

var Cabotagem = Config{
	Nome:        "cabotagem",
	EnvArquivo:  "PLANILHA_CABOTAGEM",
	URLTemplate: "https://docs.google.com/spreadsheets/d/%s/export?format=xlsx",
	ColunaData:  "DATA DE EMBARQUE",
	Obrigatorias: []string{
		"DATA DE EMBARQUE", "PORTO DE ORIGEM", "PORTO DE DESTINO",
		"NAVIO", "VIAGEM", "REMETENTE", "DESTINATÁRIO",
	},
	Quantidades: []string{"QUANTIDADE C20", "QUANTIDADE C40"},
	ColunaTotal: "QUANTIDADE TOTAL",
	Categorias: []string{
		"PORTO DE ORIGEM", "PORTO DE DESTINO", "NAVIO", "VIAGEM",
		"REMETENTE", "DESTINATÁRIO", "REMETENTE - CIDADE", "DESTINATÁRIO - ESTADO",
	},
	DropNulas: []string{"DATA DE EMBARQUE"},
	ChaveUnica: []string{
		"DATA DE EMBARQUE", "PORTO DE ORIGEM", "PORTO DE DESTINO",
		"NAVIO", "VIAGEM", "REMETENTE", "DESTINATÁRIO",
	},
	PivotColunas: []string{"DESTINATÁRIO - ESTADO"},
	Detalhe: []string{
		"DATA DE EMBARQUE", "PORTO DE ORIGEM", "PORTO DE DESTINO", "NAVIO",
		"VIAGEM", "REMETENTE", "REMETENTE - CIDADE", "DESTINATÁRIO",
		"DESTINATÁRIO - ESTADO", "QUANTIDADE C20", "QUANTIDADE C40",
		"QUANTIDADE TOTAL",
	},
	Snapshot: "dados_cabotagem_consolidados.csv",
}

// Todos retorna os conjuntos de dados na ordem das páginas do dashboard.
func Todos() []Config {
	return []Config{Importacao, Exportacao, Cabotagem}
}

// PorNome localiza um conjunto de dados pelo nome usado na API.
func PorNome(nome string) (Config, bool) {
	for _, c := range Todos() {
		if c.Nome == nome {
			return c, true
		}
	}
	return Config{}, false
}
