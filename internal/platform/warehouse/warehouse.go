package warehouse

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/option"
	"gopkg.in/yaml.v3"
)

const (
	configFilePath = "config/config.yaml"

	// insert_mode の選択肢
	InsertModeParams = "params" // クエリパラメータでバインド（既定）
	InsertModeLegacy = "legacy" // 値を文字列リテラルで埋め込む互換モード

	DefaultTimezone = "Asia/Tokyo"
)

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type WarehouseConfig struct {
	ProjectID       string `yaml:"project_id"`
	Table           string `yaml:"table"` // "dataset.table" 形式
	CredentialsFile string `yaml:"credentials_file"`
	InsertMode      string `yaml:"insert_mode"`
	DryRun          bool   `yaml:"dry_run"`
}

type Config struct {
	Version     string          `yaml:"version"`
	Mode        string          `yaml:"mode"`
	Timezone    string          `yaml:"timezone"`
	Server      ServerConfig    `yaml:"server"`
	Certificate Certs           `yaml:"certificate"`
	Warehouse   WarehouseConfig `yaml:"warehouse"`
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = configFilePath
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルの読み込み失敗: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("設定ファイルのパース失敗: %w", err)
	}

	// 既定値
	if cfg.Timezone == "" {
		cfg.Timezone = DefaultTimezone
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8443"
	}
	if cfg.Warehouse.InsertMode == "" {
		cfg.Warehouse.InsertMode = InsertModeParams
	}

	// 必須項目とモードの軽い検証（接続前に弾く）
	if cfg.Warehouse.ProjectID == "" {
		return nil, fmt.Errorf("warehouse.project_id が未設定")
	}
	if cfg.Warehouse.Table == "" {
		return nil, fmt.Errorf("warehouse.table が未設定")
	}
	switch cfg.Warehouse.InsertMode {
	case InsertModeParams, InsertModeLegacy:
	default:
		return nil, fmt.Errorf("warehouse.insert_mode が不正: %q", cfg.Warehouse.InsertMode)
	}

	return &cfg, nil
}

// Connect: BigQueryクライアントを生成する。
// credentials_file が空なら ADC（Application Default Credentials）に任せる。
// BigQueryには Ping 相当が無いので、疎通確認は最初のクエリに委ねる。
func Connect(ctx context.Context, c WarehouseConfig) (*bigquery.Client, error) {
	var opts []option.ClientOption
	if c.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(c.CredentialsFile))
	}

	client, err := bigquery.NewClient(ctx, c.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("BigQueryクライアント初期化に失敗: %w", err)
	}
	return client, nil
}
