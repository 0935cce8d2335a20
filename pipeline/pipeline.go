package pipeline

import (
	"context"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/itrackerdev/dashboard-comercial/cache"
	"github.com/itrackerdev/dashboard-comercial/dataset"
)

// Pipeline liga as etapas compartilhadas pelas três páginas:
// fetch -> leitura do xlsx -> validação de schema -> normalização ->
// ID_UNICO -> (consolidação opcional). Cada dataset só difere pelo Config.
type Pipeline struct {
	Fetcher *Fetcher
	Cache   *cache.TTL
}

func Nova(fetcher *Fetcher, c *cache.TTL) *Pipeline {
	if fetcher == nil {
		fetcher = NovoFetcher(TimeoutPadrao)
	}
	if c == nil {
		c = cache.Nova(cache.TTLPadrao)
	}
	return &Pipeline{Fetcher: fetcher, Cache: c}
}

// CarregarDados baixa e normaliza a planilha do dataset, passando pelo
// cache de leitura. O dataframe retornado já tem datas canônicas,
// quantidades numéricas limpas, categorias em maiúsculas e ID_UNICO.
func (p *Pipeline) CarregarDados(ctx context.Context, cfg dataset.Config, fileID string) (dataframe.DataFrame, error) {
	if v, ok := p.Cache.Get(cfg.Nome); ok {
		return v.(dataframe.DataFrame), nil
	}

	df, err := p.processar(ctx, cfg, fileID)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	p.Cache.Set(cfg.Nome, df)
	return df, nil
}

func (p *Pipeline) processar(ctx context.Context, cfg dataset.Config, fileID string) (dataframe.DataFrame, error) {
	conteudo, err := p.Fetcher.Baixar(ctx, cfg.URL(fileID))
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	registros, err := LerPlanilha(conteudo)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	registros = NormalizarCabecalho(registros)

	df, err := CarregarRegistros(registros)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	obrigatorias := append([]string{}, cfg.Obrigatorias...)
	for _, q := range cfg.Quantidades {
		if !contem(obrigatorias, q) {
			obrigatorias = append(obrigatorias, q)
		}
	}
	if err := ValidarColunas(df, obrigatorias); err != nil {
		return dataframe.DataFrame{}, err
	}

	df, err = NormalizarCampos(df, cfg)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return AdicionarIDUnico(df, cfg.ChaveUnica), nil
}

// AtualizarConsolidado roda o pipeline completo e mescla o resultado no
// snapshot do dataset. Sempre refaz o fetch: a consolidação é uma ação
// explícita do operador, não pode trabalhar sobre dado de cache velho.
func (p *Pipeline) AtualizarConsolidado(ctx context.Context, cfg dataset.Config, fileID string) (dataframe.DataFrame, error) {
	df, err := p.processar(ctx, cfg, fileID)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	consolidado, err := Consolidar(df, cfg, time.Now())
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	p.Cache.Set(cfg.Nome, df)
	return consolidado, nil
}

func contem(lista []string, v string) bool {
	for _, s := range lista {
		if s == v {
			return true
		}
	}
	return false
}
