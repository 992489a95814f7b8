package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/palemoky/draw-guess/internal/config"
	"github.com/palemoky/draw-guess/internal/logger"
	"github.com/palemoky/draw-guess/internal/network/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	logFile := flag.String("log-file", "", "日志文件路径，留空输出到 ~/.draw-guess/server.log")
	logStderr := flag.Bool("log-stderr", false, "日志输出到标准错误而不是文件")
	flag.Parse()

	if !*logStderr {
		if err := logger.Init(*logFile); err != nil {
			log.Printf("初始化日志失败，继续输出到标准错误: %v", err)
		} else {
			defer logger.Close()
		}
	}

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	// 创建服务器
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("创建服务器失败: %v", err)
	}

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("正在关闭服务器...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		os.Exit(0)
	}()

	// 启动服务器
	log.Println("🎨 你画我猜服务器启动中...")
	if err := srv.Start(); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
}
