// Package sitemap gera o sitemap.xml (protocolo sitemaps.org) das páginas públicas do front-end.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Link é uma página do sitemap.
type Link struct {
	URL        string  `toml:"url"`
	ChangeFreq string  `toml:"changefreq"`
	Priority   float64 `toml:"priority"`
}

// File é o formato do arquivo TOML de links.
type File struct {
	Hostname string `toml:"hostname"`
	Links    []Link `toml:"links"`
}

// DefaultLinks são as páginas públicas da loja.
var DefaultLinks = []Link{
	{URL: "/", ChangeFreq: "daily", Priority: 1.0},
	{URL: "/catalogue", ChangeFreq: "daily", Priority: 0.9},
	{URL: "/categories", ChangeFreq: "weekly", Priority: 0.8},
	{URL: "/products", ChangeFreq: "daily", Priority: 0.8},
	{URL: "/privacy-policy", ChangeFreq: "monthly", Priority: 0.3},
	{URL: "/terms-and-conditions", ChangeFreq: "monthly", Priority: 0.3},
}

var validFreqs = map[string]bool{
	"always": true, "hourly": true, "daily": true, "weekly": true,
	"monthly": true, "yearly": true, "never": true,
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []entry  `xml:"url"`
}

type entry struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// LoadFile lê um arquivo TOML de links.
func LoadFile(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("falha ao abrir %s: %w", path, err)
	}
	defer f.Close()

	var file File
	if err := toml.NewDecoder(f).Decode(&file); err != nil {
		return File{}, fmt.Errorf("falha ao decodificar %s: %w", path, err)
	}
	return file, nil
}

// Write escreve o urlset para o hostname e os links informados.
func Write(w io.Writer, hostname string, links []Link) error {
	hostname = strings.TrimRight(strings.TrimSpace(hostname), "/")
	if hostname == "" {
		return fmt.Errorf("hostname é obrigatório")
	}

	set := urlset{Xmlns: namespace, URLs: make([]entry, 0, len(links))}
	for _, l := range links {
		if l.ChangeFreq != "" && !validFreqs[l.ChangeFreq] {
			return fmt.Errorf("changefreq inválido para %s: %q", l.URL, l.ChangeFreq)
		}
		if l.Priority < 0 || l.Priority > 1 {
			return fmt.Errorf("priority fora de [0,1] para %s: %v", l.URL, l.Priority)
		}

		path := l.URL
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		e := entry{Loc: hostname + path, ChangeFreq: l.ChangeFreq}
		if l.Priority > 0 {
			e.Priority = fmt.Sprintf("%.1f", l.Priority)
		}
		set.URLs = append(set.URLs, e)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile gera o sitemap diretamente em um arquivo.
func WriteFile(path, hostname string, links []Link) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, hostname, links); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
