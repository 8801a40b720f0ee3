package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RegistryFileName 登记库文件名
const RegistryFileName = "registry.db"

// LocalFallbackDir 数据目录不可用时的本地兜底目录
const LocalFallbackDir = "result_cache"

// SharedRegistryPath 共享数据目录下的登记库路径
func SharedRegistryPath(dataFolder string) string {
	return filepath.Join(dataFolder, ".registry", RegistryFileName)
}

// LocalRegistryPath 本地兜底登记库路径
func LocalRegistryPath() string {
	return filepath.Join(".", LocalFallbackDir, RegistryFileName)
}

// ResolveRegistryPath 解析登记库路径
//
// 数据目录存在时用共享路径，否则退回本地兜底路径并置 fallback 标记，
// 由调用方负责提示用户。
func ResolveRegistryPath(dataFolder string) (path string, fallback bool) {
	if dataFolder != "" {
		if info, err := os.Stat(dataFolder); err == nil && info.IsDir() {
			return SharedRegistryPath(dataFolder), false
		}
	}
	return LocalRegistryPath(), true
}

// PromoteLocalRegistry 把本地兜底登记库迁移到共享数据目录
//
// 共享目录已有登记库时不覆盖；迁移成功后保留本地副本（.bak 后缀）。
func PromoteLocalRegistry(dataFolder string) (string, error) {
	localPath := LocalRegistryPath()
	if _, err := os.Stat(localPath); err != nil {
		return "", fmt.Errorf("no local registry to promote: %w", err)
	}

	sharedPath := SharedRegistryPath(dataFolder)
	if _, err := os.Stat(sharedPath); err == nil {
		return "", fmt.Errorf("shared registry already exists: %s", sharedPath)
	}

	if err := os.MkdirAll(filepath.Dir(sharedPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create registry directory: %w", err)
	}

	if err := copyFile(localPath, sharedPath); err != nil {
		return "", fmt.Errorf("failed to copy registry: %w", err)
	}

	// 本地副本改名留底
	_ = os.Rename(localPath, localPath+".bak")

	return sharedPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
