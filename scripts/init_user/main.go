package main

import (
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kondzio-p/ftbd-blt/internal/config"
	"github.com/kondzio-p/ftbd-blt/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 将 ADMIN_LOGIN 对应账号的密码重置为 ADMIN_PASSWORD，账号不存在时创建。
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置加载失败:", err)
	}

	// 初始化数据库
	if err := db.Init(cfg.Resolve(cfg.DatabasePath)); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("密码加密失败:", err)
	}

	var user db.User
	err = db.DB.Where("username = ?", cfg.AdminLogin).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = db.User{Username: cfg.AdminLogin, Password: string(hashedPassword)}
		if err := db.DB.Create(&user).Error; err != nil {
			log.Fatal("创建用户失败:", err)
		}
		fmt.Println("管理员用户创建成功")
	case err != nil:
		log.Fatal("查询用户失败:", err)
	default:
		if err := db.DB.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
			log.Fatal("重置密码失败:", err)
		}
		fmt.Println("管理员密码已重置")
	}

	fmt.Println("用户名:", cfg.AdminLogin)
}
