package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/esferaordo/ordo-api/internal/application/member"
)

// columnas reconocidas (ya plegadas: minúsculas, sin acentos ni espacios).
var headerAliases = map[string]string{
	"nome":                 "nome",
	"nomecompleto":         "nome",
	"email":                "email",
	"e-mail":               "email",
	"classe":               "class",
	"class":                "class",
	"grau":                 "class",
	"situacao":             "situacao",
	"status":               "situacao",
	"condicao":             "condicao",
	"condicaomensalidade":  "condicao",
	"condicao_mensalidade": "condicao",
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// foldHeader "Condição Mensalidade" -> "condicaomensalidade".
func foldHeader(s string) string {
	out := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(stripAccents(s), "\ufeff")))
	return strings.ReplaceAll(out, " ", "")
}

// decoder envuelve r según la codificación de la planilla.
func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "cp1252", "windows-1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada: %s", encoding)
}

// parseMembers lee la planilla (separador ';' o ',') y devuelve filas normalizadas.
func parseMembers(r io.Reader, encoding string, sep rune) ([]member.ImportRow, error) {
	in, err := decoder(r, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(in)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int)
	for i, h := range header {
		if col, ok := headerAliases[foldHeader(h)]; ok {
			if _, dup := idx[col]; !dup {
				idx[col] = i
			}
		}
	}
	if _, ok := idx["nome"]; !ok {
		return nil, fmt.Errorf("cabecera sin columna de nome: %v", header)
	}

	title := cases.Title(language.BrazilianPortuguese)
	get := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []member.ImportRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila %d: %w", len(rows)+2, err)
		}
		name := strings.Join(strings.Fields(get(rec, "nome")), " ")
		rows = append(rows, member.ImportRow{
			NomeCompleto:        title.String(strings.ToLower(name)),
			Email:               get(rec, "email"),
			Class:               get(rec, "class"),
			Situacao:            foldValue(get(rec, "situacao")),
			CondicaoMensalidade: foldValue(get(rec, "condicao")),
		})
	}
	return rows, nil
}

// foldValue "Ativo" -> "ATIVO", "Remído" -> "REMIDO".
func foldValue(s string) string {
	return strings.ToUpper(strings.TrimSpace(stripAccents(s)))
}
