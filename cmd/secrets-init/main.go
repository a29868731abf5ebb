package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/qq148376839/vnpy/pkg/longport"
	"github.com/qq148376839/vnpy/pkg/secretstore"
)

// 把 LONGPORT_* 凭证从 .env / 环境变量导入加密的 secret store，
// 之后网关可以只带 store 路径和密钥启动，不在磁盘上留明文凭证。
func main() {
	var (
		envPath   = flag.String("env", ".env", ".env 文件路径（缺失则只读环境变量）")
		dbPath    = flag.String("store", getenv("LONGPORT_SECRET_DB", "data/secrets.badger"), "secret store 路径")
		secretKey = flag.String("secret-key", getenv("LONGPORT_SECRET_KEY", ""), "加密密钥（32 字节 base64/hex）")
	)
	flag.Parse()

	keyBytes, err := secretstore.ParseKey(*secretKey)
	if err != nil {
		fatal(err)
	}
	if keyBytes == nil {
		fatal(fmt.Errorf("secret key is required: set LONGPORT_SECRET_KEY or pass -secret-key"))
	}

	_ = godotenv.Load(*envPath)

	cfg, err := longport.ConfigFromEnv()
	if err != nil {
		fatal(err)
	}

	ss, err := secretstore.Open(secretstore.OpenOptions{
		Path:          *dbPath,
		EncryptionKey: keyBytes,
		ReadOnly:      false,
	})
	if err != nil {
		fatal(err)
	}
	defer ss.Close()

	pairs := []struct {
		key string
		val string
	}{
		{secretstore.KeyAppKey, cfg.AppKey},
		{secretstore.KeyAppSecret, cfg.AppSecret},
		{secretstore.KeyAccessToken, cfg.AccessToken},
	}
	for _, p := range pairs {
		if err := ss.SetString(p.key, p.val); err != nil {
			fatal(err)
		}
	}

	fmt.Fprintf(os.Stderr, "已导入 %d 项凭证到 %s\n", len(pairs), *dbPath)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
