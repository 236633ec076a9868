package main

import (
	"flag"
	"log"

	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/sitemap"
)

func main() {
	hostname := flag.String("hostname", "https://votredomaine.com", "domínio público do front-end")
	configPath := flag.String("config", "", "arquivo TOML com hostname e links (opcional)")
	out := flag.String("out", "./sitemap.xml", "arquivo de saída")
	flag.Parse()

	appLog := logger.New(logger.Options{Level: "info", Pretty: true})

	links := sitemap.DefaultLinks
	host := *hostname
	if *configPath != "" {
		file, err := sitemap.LoadFile(*configPath)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		if len(file.Links) > 0 {
			links = file.Links
		}
		if file.Hostname != "" {
			host = file.Hostname
		}
	}

	if err := sitemap.WriteFile(*out, host, links); err != nil {
		appLog.Fatal("Falha ao gerar o sitemap.", err)
	}
	appLog.Info("✅ Sitemap gerado.", map[string]interface{}{"out": *out, "urls": len(links)})
}
