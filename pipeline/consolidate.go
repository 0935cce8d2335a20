package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/itrackerdev/dashboard-comercial/dataset"
)

// ColunaAtualizacao registra quando o lote foi processado; desempata a
// deduplicação quando duas cópias têm a mesma data de embarque.
const ColunaAtualizacao = "DATA_ATUALIZACAO"

// CarregarSnapshot lê o consolidado do dataset. Arquivo inexistente,
// ilegível ou corrompido vale como "sem consolidado anterior": começar do
// zero é melhor do que travar o pipeline inteiro.
func CarregarSnapshot(caminho string) dataframe.DataFrame {
	f, err := os.Open(caminho)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("Erro ao abrir consolidado %s: %v; iniciando novo consolidado.\n", caminho, err)
		}
		return dataframe.DataFrame{}
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Error() != nil {
		fmt.Printf("Consolidado %s corrompido (%v); iniciando novo consolidado.\n", caminho, df.Error())
		return dataframe.DataFrame{}
	}
	return df
}

func mesmasColunas(a, b dataframe.DataFrame) bool {
	nomesA, nomesB := a.Names(), b.Names()
	if len(nomesA) != len(nomesB) {
		return false
	}
	conjunto := make(map[string]bool, len(nomesA))
	for _, n := range nomesA {
		conjunto[n] = true
	}
	for _, n := range nomesB {
		if !conjunto[n] {
			return false
		}
	}
	return true
}

// Consolidar mescla o lote recém-normalizado com o consolidado em disco,
// mantém exatamente um registro por ID_UNICO (data de embarque mais
// recente vence; empate vai para o lote com DATA_ATUALIZACAO maior) e
// regrava o arquivo inteiro. Não há lock de arquivo: duas sessões
// consolidando ao mesmo tempo ficam em last-writer-wins, comportamento
// observado do sistema original.
func Consolidar(df dataframe.DataFrame, cfg dataset.Config, agora time.Time) (dataframe.DataFrame, error) {
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, ErrPlanilhaVazia
	}
	if !temColuna(df, ColunaID) {
		df = AdicionarIDUnico(df, cfg.ChaveUnica)
	}

	carimbo := agora.UTC().Format(time.RFC3339)
	carimbos := make([]string, df.Nrow())
	for i := range carimbos {
		carimbos[i] = carimbo
	}
	df = df.Mutate(series.New(carimbos, series.String, ColunaAtualizacao))

	anterior := CarregarSnapshot(cfg.Snapshot)
	completo := df
	if anterior.Nrow() > 0 {
		if mesmasColunas(anterior, df) {
			completo = anterior.RBind(df)
			if completo.Error() != nil {
				fmt.Printf("Erro ao mesclar consolidado de %s (%v); mantendo apenas o lote novo.\n", cfg.Nome, completo.Error())
				completo = df
			}
		} else {
			fmt.Printf("Consolidado de %s tem colunas incompatíveis; iniciando novo consolidado.\n", cfg.Nome)
		}
	}

	// Uma linha por ID_UNICO, a mais recente vence (mesmo idioma do
	// último-dia-por-chave: mapa de melhor linha, depois Subset).
	ids := completo.Col(ColunaID).Records()
	datas := completo.Col(cfg.ColunaData).Records()
	atualizacoes := completo.Col(ColunaAtualizacao).Records()

	melhor := map[string]int{}
	for i, id := range ids {
		j, visto := melhor[id]
		if !visto {
			melhor[id] = i
			continue
		}
		// Datas em AAAA-MM-DD e carimbos RFC3339 comparam como texto.
		if datas[i] > datas[j] || (datas[i] == datas[j] && atualizacoes[i] >= atualizacoes[j]) {
			melhor[id] = i
		}
	}

	manter := make([]int, 0, len(melhor))
	for _, i := range melhor {
		manter = append(manter, i)
	}
	sort.Slice(manter, func(a, b int) bool {
		if datas[manter[a]] != datas[manter[b]] {
			return datas[manter[a]] > datas[manter[b]]
		}
		return manter[a] < manter[b]
	})
	resultado := completo.Subset(manter)
	if resultado.Error() != nil {
		return dataframe.DataFrame{}, resultado.Error()
	}

	if err := gravarSnapshot(resultado, cfg.Snapshot); err != nil {
		return dataframe.DataFrame{}, err
	}
	return resultado, nil
}

// gravarSnapshot regrava o consolidado por inteiro, via arquivo temporário
// e rename para nunca deixar um snapshot pela metade.
func gravarSnapshot(df dataframe.DataFrame, caminho string) error {
	dir := filepath.Dir(caminho)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("erro ao criar diretório do consolidado: %w", err)
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(caminho)+".tmp")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário: %w", err)
	}
	if err := df.WriteCSV(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("erro ao gravar consolidado: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), caminho); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("erro ao substituir consolidado: %w", err)
	}
	return nil
}
