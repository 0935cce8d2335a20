// Package cache guarda resultados de fetch por tempo limitado, para não
// baixar a planilha de novo a cada interação do dashboard. Substitui o
// estado global de sessão do sistema antigo por uma dependência explícita
// e testável: a expiração é só por tempo decorrido, sem evento de
// invalidação.
package cache

import (
	"sync"
	"time"
)

// TTLPadrao segue a janela de uma hora do dashboard.
const TTLPadrao = time.Hour

type item struct {
	valor  interface{}
	expira time.Time
}

// TTL é um cache chave -> (valor, expiração) seguro para uso concorrente.
type TTL struct {
	mu    sync.RWMutex
	ttl   time.Duration
	itens map[string]item

	// agora é injetável para os testes controlarem o relógio.
	agora func() time.Time
}

func Nova(ttl time.Duration) *TTL {
	if ttl <= 0 {
		ttl = TTLPadrao
	}
	return &TTL{
		ttl:   ttl,
		itens: make(map[string]item),
		agora: time.Now,
	}
}

// Get retorna o valor da chave se ainda não expirou.
func (c *TTL) Get(chave string) (interface{}, bool) {
	c.mu.RLock()
	it, ok := c.itens[chave]
	c.mu.RUnlock()
	if !ok || c.agora().After(it.expira) {
		return nil, false
	}
	return it.valor, true
}

// Set grava o valor com a validade padrão do cache.
func (c *TTL) Set(chave string, valor interface{}) {
	c.mu.Lock()
	c.itens[chave] = item{valor: valor, expira: c.agora().Add(c.ttl)}
	c.mu.Unlock()
}

// Remover descarta a entrada, forçando novo fetch na próxima leitura.
func (c *TTL) Remover(chave string) {
	c.mu.Lock()
	delete(c.itens, chave)
	c.mu.Unlock()
}
