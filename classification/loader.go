package classification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Форматы файла определения
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// FormatFromPath определяет формат по расширению файла
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported rules file extension: %q", filepath.Ext(path))
	}
}

// LoadDefinition читает определение правил из файла
func LoadDefinition(path string) (Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Definition{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	def, err := ParseDefinition(data, format)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}
	return def, nil
}

// ParseDefinition разбирает определение. Неизвестные поля считаются ошибкой,
// чтобы опечатка в имени поля не отключала правило молча.
func ParseDefinition(data []byte, format string) (Definition, error) {
	var def Definition

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil && err != io.EOF {
			return Definition{}, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return Definition{}, err
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &def)
		if err != nil {
			return Definition{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return Definition{}, fmt.Errorf("unknown fields: %s", strings.Join(keys, ", "))
		}
	default:
		return Definition{}, fmt.Errorf("unsupported format: %q", format)
	}

	return def, nil
}

// EncodeDefinition записывает определение в указанном формате
func EncodeDefinition(w io.Writer, def Definition, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(def); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(def)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(def)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}

// LoadTable загружает определение из файла или берет встроенное, если путь пуст, и строит таблицу
func LoadTable(path string) (*Table, error) {
	def := DefaultDefinition()
	if path != "" {
		loaded, err := LoadDefinition(path)
		if err != nil {
			return nil, err
		}
		def = loaded
	}
	return Build(def)
}
