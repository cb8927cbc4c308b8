package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kondzio-p/ftbd-blt/internal/config"
	"github.com/kondzio-p/ftbd-blt/internal/db"
	"github.com/kondzio-p/ftbd-blt/internal/kvstore"
	"github.com/kondzio-p/ftbd-blt/internal/service"
)

// 根据城市名批量创建子页面，例如：
//
//	go run ./scripts/seed_subpages Chojnice Kościerzyna Bytów
func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: seed_subpages <city> [city...]")
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置加载失败:", err)
	}

	if err := db.Init(cfg.Resolve(cfg.DatabasePath)); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	kv, err := kvstore.Open(kvstore.Options{
		Driver:       cfg.KVDriver,
		DatabasePath: cfg.Resolve(cfg.DatabasePath),
		BadgerDir:    cfg.Resolve(cfg.BadgerDir),
	})
	if err != nil {
		log.Fatal("存储打开失败:", err)
	}
	defer kv.Close()

	pages := service.NewPageStore(kv, nil)
	pages.Load()
	editor := service.NewPageEditor(pages)

	created := 0
	for _, city := range flag.Args() {
		name, slug, err := pages.PrepareSubPage(city, "")
		if errors.Is(err, service.ErrSlugTaken) {
			fmt.Printf("跳过 %s：slug 已存在\n", city)
			continue
		}
		if err != nil {
			fmt.Printf("跳过 %s：%v\n", city, err)
			continue
		}

		page := pages.AddNewSubPage(name, slug)

		// 子页面只列出自己的城市
		cities, _ := json.Marshal([]string{name})
		if err := editor.Open(page.ID); err != nil {
			log.Fatal("打开页面失败:", err)
		}
		if err := editor.ChangeField(service.FieldLocations, cities, "cities"); err != nil {
			log.Fatal("更新城市失败:", err)
		}
		editor.Save()

		created++
		fmt.Printf("已创建 %s -> %s (%s)\n", name, slug, page.ID)
	}

	fmt.Printf("共创建 %d 个子页面\n", created)
}
