package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestFoldHeader(t *testing.T) {
	assert.Equal(t, "condicaomensalidade", foldHeader(" Condição Mensalidade "))
	assert.Equal(t, "situacao", foldHeader("\ufeffSituação"))
	assert.Equal(t, "nome", foldHeader("NOME"))
}

func TestParseMembers_Latin1(t *testing.T) {
	csv := "Nome Completo;E-mail;Grau;Situação;Condição\n" +
		"JOÃO  DA SILVA;joao@loja.org;Mestre;Ativo;Remído\n" +
		"maria souza;;;;\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(csv)
	require.NoError(t, err)

	rows, err := parseMembers(bytes.NewBufferString(encoded), "latin1", ';')
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "João Da Silva", rows[0].NomeCompleto)
	assert.Equal(t, "joao@loja.org", rows[0].Email)
	assert.Equal(t, "Mestre", rows[0].Class)
	assert.Equal(t, "ATIVO", rows[0].Situacao)
	assert.Equal(t, "REMIDO", rows[0].CondicaoMensalidade)

	assert.Equal(t, "Maria Souza", rows[1].NomeCompleto)
	assert.Empty(t, rows[1].Situacao)
}

func TestParseMembers_UTF8Coma(t *testing.T) {
	rows, err := parseMembers(strings.NewReader("nome,email\nAna Lima,ana@x.org\n"), "utf8", ',')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana Lima", rows[0].NomeCompleto)
}

func TestParseMembers_SinColumnaNome(t *testing.T) {
	_, err := parseMembers(strings.NewReader("email;grau\nx@y.org;1\n"), "utf8", ';')
	assert.Error(t, err)
}

func TestParseMembers_EncodingDesconocido(t *testing.T) {
	_, err := parseMembers(strings.NewReader("nome\nA\n"), "ebcdic", ';')
	assert.Error(t, err)
}
