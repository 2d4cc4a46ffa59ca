package main

import (
	"log"
	"os"

	"github.com/chenBenjamin97/tennis-analyzer/pkg/analysis"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/api"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/store"
	"github.com/chenBenjamin97/tennis-analyzer/pkg/video"
	"github.com/spf13/viper"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	analysis.SetDefaults()
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error: Could not read config file, got '%v'", err)
	}

	//first - create project's data root dir
	if err := os.MkdirAll(viper.GetString("directory.root"), 0766); err != nil {
		log.Printf("Error Creating '%s' directory, got '%v'", viper.GetString("directory.root"), err)
	}

	//create missing directories from config file, 'detector' is a script and not a directory
	for key, dir := range viper.GetStringMapString("directory") {
		if key == "detector" || key == "root" {
			continue
		}

		if _, err := os.Stat(dir); err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0766); err != nil {
					log.Printf("Error Creating '%s' directory, got '%v'", dir, err)
				}
			}
		}
	}

	if viper.GetString("video.prod_format") == "" || viper.GetString("directory.detector") == "" || viper.GetString("database.path") == "" {
		log.Fatalf("Error: Missing critical configurations")
	}

	if _, err := analysis.ConfigFromViper(); err != nil {
		log.Fatalf("Error: Bad analysis configuration, got '%v'", err)
	}

	st, err := store.Open(viper.GetString("database.path"))
	if err != nil {
		log.Fatalf("Error: Could not open database, got '%v'", err)
	}
	defer st.Close()

	r := api.SetRouter(st, func(srcVideoName string) { video.Tag(srcVideoName, st) })
	if err := r.Run(":" + viper.GetString("http.port")); err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}
}
