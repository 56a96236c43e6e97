package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Marton-art/proyecto-integrado.ignore/pkg/config"
)

func TestDatabaseURLWithIPv4_IPLiteral(t *testing.T) {
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/db", databaseURLWithIPv4("postgres://u:p@127.0.0.1/db"))
	assert.Equal(t, "::not a url", databaseURLWithIPv4("::not a url"))
}

func TestResolveDSN_HostIPv4(t *testing.T) {
	cfg := config.DBConfig{Host: "127.0.0.1", Port: 5432, User: "app", DBName: "calificaciones", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:@127.0.0.1:5432/calificaciones?sslmode=disable", ResolveDSN(cfg))
}
