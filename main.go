package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/birthdaycard/pkg/app"
	"github.com/decker502/birthdaycard/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "从磁盘读取场景配置（默认使用内置 data/scene.yaml）")
	watch := flag.Bool("watch", false, "监听 --config 文件，修改后重新加载场景")
	skipIntro := flag.Bool("skip-intro", false, "跳过开场文字，直接播放动画")
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Watch:      *watch,
		SkipIntro:  *skipIntro,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer gameApp.Close()

	window := gameApp.Window()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		fmt.Fprintf(os.Stderr, "运行失败: %v\n", err)
		os.Exit(1)
	}
}
