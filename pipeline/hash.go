package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ColunaID é a coluna derivada com o identificador de conteúdo do registro.
const ColunaID = "ID_UNICO"

// CriarIDUnico gera o identificador de um embarque a partir da tupla
// ordenada de campos de negócio: md5 dos valores concatenados com "_".
// Tuplas iguais geram sempre o mesmo hash; é esse o único critério de
// deduplicação. Campos ausentes entram como vazio, então o hash nunca
// falha; linhas muito malformadas apenas deduplicam fracamente.
func CriarIDUnico(valores []string) string {
	soma := md5.Sum([]byte(strings.Join(valores, "_")))
	return hex.EncodeToString(soma[:])
}

// AdicionarIDUnico calcula o ID_UNICO de cada linha usando a tupla de
// chave do dataset.
func AdicionarIDUnico(df dataframe.DataFrame, chave []string) dataframe.DataFrame {
	colunas := make([][]string, len(chave))
	for i, nome := range chave {
		if temColuna(df, nome) {
			colunas[i] = df.Col(nome).Records()
		}
	}

	ids := make([]string, df.Nrow())
	tupla := make([]string, len(chave))
	for linha := 0; linha < df.Nrow(); linha++ {
		for i := range chave {
			if colunas[i] != nil {
				tupla[i] = colunas[i][linha]
			} else {
				tupla[i] = ""
			}
		}
		ids[linha] = CriarIDUnico(tupla)
	}
	return df.Mutate(series.New(ids, series.String, ColunaID))
}
