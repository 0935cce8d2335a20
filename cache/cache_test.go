package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := Nova(time.Hour)
	c.Set("importacao", 42)

	v, ok := c.Get("importacao")
	if !ok || v.(int) != 42 {
		t.Fatalf("Get = (%v, %v), esperado (42, true)", v, ok)
	}

	if _, ok := c.Get("exportacao"); ok {
		t.Error("chave nunca gravada não deveria existir")
	}
}

func TestExpiracao(t *testing.T) {
	agora := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := Nova(time.Hour)
	c.agora = func() time.Time { return agora }

	c.Set("importacao", "dados")

	agora = agora.Add(59 * time.Minute)
	if _, ok := c.Get("importacao"); !ok {
		t.Error("entrada não deveria expirar antes de uma hora")
	}

	agora = agora.Add(2 * time.Minute)
	if _, ok := c.Get("importacao"); ok {
		t.Error("entrada deveria expirar depois de uma hora")
	}
}

func TestRemover(t *testing.T) {
	c := Nova(time.Hour)
	c.Set("cabotagem", "dados")
	c.Remover("cabotagem")

	if _, ok := c.Get("cabotagem"); ok {
		t.Error("entrada removida não deveria existir")
	}
}
