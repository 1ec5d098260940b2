package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// SampleQuestionsFile is the question file written next to a scaffolded config.
const SampleQuestionsFile = "questions.csv"

const defaultConfig = `version: 1
source: "questions.csv"
delimiter: ","
pass_threshold: 80
ui: auto
no_color: false
fetch_timeout: 10s
log_level: info
serve:
  addr: "127.0.0.1:8080"
  cors_origins:
    - "http://localhost:3000"
`

const sampleQuestions = `question,A,B,C,D,answer
What does HTTP stand for?,HyperText Transfer Protocol,High Transfer Text Protocol,Hyperlink Text Process,,A
Which port does HTTPS use by default?,80,443,8080,22,B
"Which of these is a CSV ""delimiter""?",Comma,Period,,,A
`

// Scaffold writes a starter config and sample question file into dir. It
// refuses to overwrite existing files.
func Scaffold(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	configPath := filepath.Join(dir, ConfigFileName)
	questionsPath := filepath.Join(dir, SampleQuestionsFile)
	for _, path := range []string{configPath, questionsPath} {
		if info, err := os.Stat(path); err == nil {
			if info.IsDir() {
				return "", fmt.Errorf("path %q is a directory", path)
			}
			return "", fmt.Errorf("file already exists at %q", path)
		} else if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat %s: %w", path, err)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	if err := os.WriteFile(questionsPath, []byte(sampleQuestions), 0o644); err != nil {
		return "", fmt.Errorf("write questions file: %w", err)
	}
	return configPath, nil
}
