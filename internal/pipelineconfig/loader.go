package pipelineconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"

	"github.com/wonny/revenue-risk/internal/contracts"
)

// Load YAML 파일을 읽어 Config 반환
// 파일에 없는 필드는 기본값 유지, 알 수 없는 필드는 즉시 실패
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read pipeline config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault path 가 비어 있으면 기본 설정, 아니면 Load
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse YAML 바이트 → 검증된 Config
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, fmt.Errorf("apply defaults: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 오타/미사용 필드 발견 시 에러
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", contracts.ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Hash 설정의 SHA256 (canonical JSON)
// map 대신 struct 만 사용하므로 필드 순서가 고정되어 재현 가능
func (c Config) Hash() (string, error) {
	jsonBytes, err := json.Marshal(c)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

// YAML 설정을 YAML 문서로 직렬화 (config show 출력용)
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
