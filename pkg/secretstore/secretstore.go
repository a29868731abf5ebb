package secretstore

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// 存放长桥凭证的键名
const (
	KeyAppKey      = "longport/app_key"
	KeyAppSecret   = "longport/app_secret"
	KeyAccessToken = "longport/access_token"
)

// Store 静态加密的凭证 KV（Badger）
//
// 加密由 Badger 的 value log + key registry 提供，本包只做键值封装。
type Store struct {
	db *badger.DB
}

// OpenOptions 打开参数
type OpenOptions struct {
	Path          string
	EncryptionKey []byte // 32 字节；为 nil 时不加密（不推荐）
	ReadOnly      bool
}

// Open 打开凭证库
func Open(opts OpenOptions) (*Store, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("secretstore: path is required")
	}
	bopts := badger.DefaultOptions(opts.Path).
		WithLogger(nil).
		WithReadOnly(opts.ReadOnly)
	if len(opts.EncryptionKey) > 0 {
		// 加密库需要 index cache
		bopts = bopts.
			WithEncryptionKey(opts.EncryptionKey).
			WithIndexCacheSize(64 << 20)
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close 关闭凭证库
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// GetString 读取字符串值，第二个返回值表示键是否存在
func (s *Store) GetString(key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, errors.New("secretstore: not opened")
	}
	var out string
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			out = string(val)
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}
	return out, found, nil
}

// SetString 写入字符串值
func (s *Store) SetString(key, val string) error {
	if s == nil || s.db == nil {
		return errors.New("secretstore: not opened")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(val))
	})
}

// Credentials 读取长桥三项凭证，缺失任何一项都报错
func (s *Store) Credentials() (appKey, appSecret, accessToken string, err error) {
	for _, entry := range []struct {
		key string
		dst *string
	}{
		{KeyAppKey, &appKey},
		{KeyAppSecret, &appSecret},
		{KeyAccessToken, &accessToken},
	} {
		val, ok, getErr := s.GetString(entry.key)
		if getErr != nil {
			return "", "", "", getErr
		}
		if !ok || val == "" {
			return "", "", "", errors.Errorf("secretstore: missing %s", entry.key)
		}
		*entry.dst = val
	}
	return appKey, appSecret, accessToken, nil
}

// ParseKey 解析 32 字节的加密密钥（base64 或 hex），输入为空返回 nil
func ParseKey(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	rawHex := strings.TrimPrefix(raw, "0x")
	if b, err := hex.DecodeString(rawHex); err == nil {
		if len(b) != 32 {
			return nil, errors.Errorf("decoded key length must be 32, got %d", len(b))
		}
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(raw); err == nil {
		if len(b) != 32 {
			return nil, errors.Errorf("decoded key length must be 32, got %d", len(b))
		}
		return b, nil
	}
	return nil, errors.New("key must be base64(32 bytes) or hex(32 bytes)")
}
