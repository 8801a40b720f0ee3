package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	// FolderPath 共享数据目录（接口计划表所在目录）
	FolderPath string `toml:"folder_path"`
}

// BusinessConfig 业务配置
type BusinessConfig struct {
	// GraceDays 任务缺失宽限期（天），超过后归档
	GraceDays int `toml:"grace_days"`
	// Adjustments 项目号 -> 日期偏移天数（比较前减去）
	Adjustments map[string]int `toml:"adjustments"`
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20319,
			DevMode: false,
		},
		Data: DataConfig{
			FolderPath: "",
		},
		Business: BusinessConfig{
			GraceDays: 30,
			Adjustments: map[string]int{
				"1818": 6,
			},
		},
	}
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig 从可执行文件同目录加载配置
//
// 先读 config.toml；旧版部署只有 config.json（{"folder_path": ...}），
// 其中的 folder_path 继续生效，作为数据目录的覆盖项。
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	tomlPath := filepath.Join(exeDir, "config.toml")
	if data, err := os.ReadFile(tomlPath); err == nil {
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 旧版 config.json 兼容
	if folder := legacyFolderPath(filepath.Join(exeDir, "config.json")); folder != "" {
		config.Data.FolderPath = folder
	}

	return config, nil
}

// legacyFolderPath 读取旧版 config.json 的 folder_path，读不到返回空串
func legacyFolderPath(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var legacy struct {
		FolderPath string `json:"folder_path"`
	}
	if err := json.Unmarshal(data, &legacy); err != nil {
		return ""
	}
	return legacy.FolderPath
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
