package cmd

import "testing"

func TestConfigFlagDefault(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("config")
	if flag == nil {
		t.Fatal("config flag not registered")
	}
	if flag.DefValue != "tagger.yaml" {
		t.Errorf("config default = %q, want tagger.yaml", flag.DefValue)
	}
}
