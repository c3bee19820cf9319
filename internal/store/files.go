package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "sudooom.gbfan/internal/errors"
)

const (
	originDir = "origin"
	recordDir = "record"
)

// Files 本地牌谱目录
//
//	{root}/origin/{id}.json  接口原始响应
//	{root}/record/{id}.json  解码后的牌谱, 缩进格式
type Files struct {
	root string
}

// NewFiles 创建本地牌谱目录
func NewFiles(root string) *Files {
	return &Files{root: root}
}

// Root 数据根目录
func (f *Files) Root() string {
	return f.root
}

// OriginPath 原始响应文件路径
func (f *Files) OriginPath(id string) string {
	return filepath.Join(f.root, originDir, id+".json")
}

// RecordPath 解码后牌谱文件路径
func (f *Files) RecordPath(id string) string {
	return filepath.Join(f.root, recordDir, id+".json")
}

// HasOrigin 本地是否已下载
func (f *Files) HasOrigin(id string) bool {
	_, err := os.Stat(f.OriginPath(id))
	return err == nil
}

// LoadOrigin 读取原始响应, 首尾空白被去除
func (f *Files) LoadOrigin(id string) ([]byte, error) {
	data, err := os.ReadFile(f.OriginPath(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.ErrRecordNotFound.Wrap(err)
		}
		return nil, err
	}
	return []byte(strings.TrimSpace(string(data))), nil
}

// SaveOrigin 保存原始响应
func (f *Files) SaveOrigin(id string, data []byte) error {
	return writeFile(f.OriginPath(id), data)
}

// SaveRecord 保存解码后的牌谱
func (f *Files) SaveRecord(id string, data []byte) error {
	return writeFile(f.RecordPath(id), data)
}

// OriginIDs 已下载的牌谱编号, 按文件名排序
func (f *Files) OriginIDs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.root, originDir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(ids)
	return ids, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON 读取 JSON 文件到 v
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// WriteJSON 以两空格缩进写出 JSON, 不转义中文和 HTML 字符
func WriteJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	return file.Close()
}
