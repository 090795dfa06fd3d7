package systems

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/birthdaycard/pkg/components"
	"github.com/decker502/birthdaycard/pkg/config"
	"github.com/decker502/birthdaycard/pkg/ecs"
	"github.com/decker502/birthdaycard/pkg/entities"
	"github.com/decker502/birthdaycard/pkg/utils"
)

// 文字绘制参数（内置位图字体 7x13，按倍数放大）
const (
	glyphHeight     = 13.0
	introTextScale  = 2.0
	termTextScale   = 1.5
	hintTextScale   = 1.0
	cardTextScale   = 1.5
	lineSpacing     = 8.0
	cylinderSegment = 32
	frostingDots    = 12
)

var (
	flameOuterColor = color.RGBA{R: 255, G: 150, B: 40, A: 255}
	flameInnerColor = color.RGBA{R: 255, G: 240, B: 170, A: 255}
	textColor       = color.RGBA{R: 250, G: 245, B: 255, A: 255}
	terminalBg      = color.RGBA{R: 8, G: 14, B: 10, A: 255}
	terminalFg      = color.RGBA{R: 120, G: 255, B: 140, A: 255}
	cardPaper       = color.RGBA{R: 252, G: 250, B: 245, A: 255}
	cardPhoto       = color.RGBA{R: 250, G: 205, B: 215, A: 255}
	cardInk         = color.RGBA{R: 60, G: 40, B: 70, A: 255}
)

// RenderSystem 绘制整个贺卡场景
//
// 绘制顺序：天空 → 场景对象（由远及近）→ 烟花 → 开场遮罩 → 开场文字 → 提示 → 卡片 → 终端
type RenderSystem struct {
	entityManager *ecs.EntityManager
	camera        utils.Camera
	face          text.Face
	skipPrompt    string

	whiteSubImage *ebiten.Image
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, cfg *config.SceneConfig) *RenderSystem {
	prompt := "press Space to skip"
	if utils.IsMobile() {
		prompt = "tap to skip"
	}

	return &RenderSystem{
		entityManager: em,
		camera: utils.Camera{
			Position:    cfg.Camera.Position,
			FocalLength: cfg.Camera.FocalLength,
			ScreenW:     cfg.Window.Width,
			ScreenH:     cfg.Window.Height,
		},
		face:       utils.DefaultFace(),
		skipPrompt: prompt,
	}
}

// Draw 绘制一帧
func (r *RenderSystem) Draw(screen *ebiten.Image) {
	if r.whiteSubImage == nil {
		white := ebiten.NewImage(3, 3)
		white.Fill(color.White)
		r.whiteSubImage = white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	intensity := r.drawSky(screen)
	r.drawSceneObjects(screen, intensity)
	r.drawParticles(screen)
	r.drawOverlay(screen)
	r.drawTextSequences(screen)
	r.drawHint(screen)
	r.drawCard(screen)
}

func (r *RenderSystem) drawSky(screen *ebiten.Image) float64 {
	intensity := 1.0
	for _, id := range ecs.GetEntitiesWith1[*components.EnvironmentLightComponent](r.entityManager) {
		light, _ := ecs.GetComponent[*components.EnvironmentLightComponent](r.entityManager, id)
		screen.Fill(light.Sky)
		intensity = light.Intensity
	}
	return intensity
}

// drawable 参与深度排序的场景对象
type drawable struct {
	id  ecs.EntityID
	obj *components.SceneObjectComponent
	tr  *components.TransformComponent
}

// sortByDepth 由远及近排序；同一深度按桌子、蛋糕、蜡烛的顺序
func sortByDepth(items []drawable) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].tr.Position.Z != items[j].tr.Position.Z {
			return items[i].tr.Position.Z < items[j].tr.Position.Z
		}
		return drawOrder(items[i].obj.Kind) < drawOrder(items[j].obj.Kind)
	})
}

func drawOrder(k components.ObjectKind) int {
	switch k {
	case components.KindTable:
		return 0
	case components.KindCake:
		return 1
	default:
		return 2
	}
}

func (r *RenderSystem) drawSceneObjects(screen *ebiten.Image, intensity float64) {
	ids := ecs.GetEntitiesWith2[*components.SceneObjectComponent, *components.TransformComponent](r.entityManager)
	items := make([]drawable, 0, len(ids))
	for _, id := range ids {
		obj, _ := ecs.GetComponent[*components.SceneObjectComponent](r.entityManager, id)
		tr, _ := ecs.GetComponent[*components.TransformComponent](r.entityManager, id)
		if tr.Visible {
			items = append(items, drawable{id: id, obj: obj, tr: tr})
		}
	}
	sortByDepth(items)

	for _, it := range items {
		switch it.obj.Kind {
		case components.KindTable:
			r.drawTable(screen, it, intensity)
		case components.KindCake:
			r.drawCake(screen, it, intensity)
		case components.KindCandle:
			r.drawCandle(screen, it, intensity)
		}
	}
}

func (r *RenderSystem) drawTable(screen *ebiten.Image, it drawable, intensity float64) {
	pos := it.tr.Position
	hw, t, hd := it.obj.Size.X, it.obj.Size.Y, it.obj.Size.Z
	wood := utils.ScaleColor(it.obj.Color, intensity)
	cloth := utils.ScaleColor(it.obj.Trim, intensity)

	// 桌腿：先画后面两条，再画前面两条（被桌面遮住的部分无所谓）
	inset := 0.25
	for _, z := range []float64{-hd + inset, hd - inset} {
		for _, x := range []float64{-hw + inset, hw - inset} {
			top := utils.Vec3{X: pos.X + x, Y: pos.Y, Z: pos.Z + z}
			bottom := top
			bottom.Y -= entities.TableLegHeight
			r.strokeWorldLine(screen, top, bottom, 0.12, wood)
		}
	}

	// 前立面
	front := r.projectAll(
		utils.Vec3{X: pos.X - hw, Y: pos.Y + t, Z: pos.Z + hd},
		utils.Vec3{X: pos.X + hw, Y: pos.Y + t, Z: pos.Z + hd},
		utils.Vec3{X: pos.X + hw, Y: pos.Y, Z: pos.Z + hd},
		utils.Vec3{X: pos.X - hw, Y: pos.Y, Z: pos.Z + hd},
	)
	r.fillPolygon(screen, front, wood, 1)

	// 桌布（顶面）
	top := r.projectAll(
		utils.Vec3{X: pos.X - hw, Y: pos.Y + t, Z: pos.Z - hd},
		utils.Vec3{X: pos.X + hw, Y: pos.Y + t, Z: pos.Z - hd},
		utils.Vec3{X: pos.X + hw, Y: pos.Y + t, Z: pos.Z + hd},
		utils.Vec3{X: pos.X - hw, Y: pos.Y + t, Z: pos.Z + hd},
	)
	r.fillPolygon(screen, top, cloth, 1)
}

func (r *RenderSystem) drawCake(screen *ebiten.Image, it drawable, intensity float64) {
	pos := it.tr.Position
	radius, height := it.obj.Size.X, it.obj.Size.Y
	base := utils.Vec3{X: pos.X, Y: pos.Y - height/2, Z: pos.Z}

	side := utils.ScaleColor(it.obj.Color, intensity*0.85)
	top := utils.ScaleColor(it.obj.Trim, intensity)
	r.drawCylinder(screen, base, radius, height, side, top)

	// 奶油装饰点随蛋糕旋转，只画朝向相机的一半
	dot := utils.ScaleColor(it.obj.Trim, intensity)
	rim := base
	rim.Y += height * 0.92
	for i := 0; i < frostingDots; i++ {
		angle := it.tr.Rotation.Y + 2*math.Pi*float64(i)/frostingDots
		offset := utils.RotateY(utils.Vec3{X: radius}, angle)
		if offset.Z < 0 {
			continue
		}
		p, scale, ok := r.camera.Project(rim.Add(offset))
		if ok {
			vector.DrawFilledCircle(screen, p.X, p.Y, 0.08*scale, dot, true)
		}
	}
}

func (r *RenderSystem) drawCandle(screen *ebiten.Image, it drawable, intensity float64) {
	pos := it.tr.Position
	radius, height := it.obj.Size.X, it.obj.Size.Y
	body := utils.ScaleColor(it.obj.Color, intensity)
	stripe := utils.ScaleColor(it.obj.Trim, intensity)
	r.drawCylinder(screen, pos, radius, height, body, stripe)

	candle, ok := ecs.GetComponent[*components.CandleComponent](r.entityManager, it.id)
	if !ok || !candle.Lit {
		return
	}

	// 火焰不受环境光影响
	flameH := candle.FlameHeight * candle.Flicker
	tip := utils.Vec3{X: pos.X, Y: pos.Y + height + flameH, Z: pos.Z}
	mid := utils.Vec3{X: pos.X, Y: pos.Y + height + flameH*0.35, Z: pos.Z}

	pMid, scale, ok := r.camera.Project(mid)
	if !ok {
		return
	}
	pTip, _, _ := r.camera.Project(tip)

	glow := float32(candle.FlameHeight) * scale * 2.2
	vector.DrawFilledCircle(screen, pMid.X, pMid.Y, glow, withAlpha(flameOuterColor, 0.18), true)

	w := float32(radius*1.6) * scale
	r.fillPolygon(screen, []utils.Point2{
		{X: pTip.X, Y: pTip.Y},
		{X: pMid.X + w, Y: pMid.Y},
		{X: pMid.X, Y: pMid.Y + w*1.2},
		{X: pMid.X - w, Y: pMid.Y},
	}, flameOuterColor, 1)
	vector.DrawFilledCircle(screen, pMid.X, pMid.Y, w*0.55, flameInnerColor, true)
}

// drawCylinder 绘制竖直圆柱：底面椭圆 + 侧面 + 顶面椭圆
func (r *RenderSystem) drawCylinder(screen *ebiten.Image, base utils.Vec3, radius, height float64, side, top color.RGBA) {
	topCenter := base
	topCenter.Y += height

	bottomPts, ok1 := r.camera.ProjectCircle(base, radius, 0, cylinderSegment)
	topPts, ok2 := r.camera.ProjectCircle(topCenter, radius, 0, cylinderSegment)
	if !ok1 || !ok2 {
		return
	}

	r.fillPolygon(screen, bottomPts, side, 1)

	// 侧面：用上下椭圆的最左/最右点连成四边形
	bl, br := horizontalExtremes(bottomPts)
	tl, tr := horizontalExtremes(topPts)
	r.fillPolygon(screen, []utils.Point2{tl, tr, br, bl}, side, 1)

	r.fillPolygon(screen, topPts, top, 1)
}

// horizontalExtremes 返回多边形最左和最右的顶点
func horizontalExtremes(pts []utils.Point2) (left, right utils.Point2) {
	left, right = pts[0], pts[0]
	for _, p := range pts[1:] {
		if p.X < left.X {
			left = p
		}
		if p.X > right.X {
			right = p
		}
	}
	return left, right
}

func (r *RenderSystem) drawParticles(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.ParticleComponent](r.entityManager) {
		p, _ := ecs.GetComponent[*components.ParticleComponent](r.entityManager, id)
		pt, _, ok := r.camera.Project(p.Position)
		if !ok || p.Alpha <= 0 {
			continue
		}
		vector.DrawFilledCircle(screen, pt.X, pt.Y, float32(p.Size), withAlpha(p.Color.RGBA(), p.Alpha), true)
	}
}

func (r *RenderSystem) drawOverlay(screen *ebiten.Image) {
	w, h := float32(r.camera.ScreenW), float32(r.camera.ScreenH)
	for _, id := range ecs.GetEntitiesWith1[*components.BackgroundFadeComponent](r.entityManager) {
		fade, _ := ecs.GetComponent[*components.BackgroundFadeComponent](r.entityManager, id)
		if fade.Opacity <= 0 {
			continue
		}
		vector.DrawFilledRect(screen, 0, 0, w, h, withAlpha(fade.Color.RGBA(), fade.Opacity), false)
	}
}

func (r *RenderSystem) drawTextSequences(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.TextSequenceComponent](r.entityManager) {
		seq, _ := ecs.GetComponent[*components.TextSequenceComponent](r.entityManager, id)
		if !seq.Visible {
			continue
		}
		switch seq.Kind {
		case components.TextSequenceIntro:
			r.drawIntro(screen, seq)
		case components.TextSequenceTerminal:
			r.drawTerminal(screen, seq)
		}
	}
}

func (r *RenderSystem) drawIntro(screen *ebiten.Image, seq *components.TextSequenceComponent) {
	lines := seq.Sequencer.VisibleLines(seq.State)
	cursor := seq.Sequencer.CursorLine(seq.State)
	lineH := glyphHeight*introTextScale + lineSpacing
	y := textBlockTop(len(lines), lineH, float64(r.camera.ScreenH))
	cx := float64(r.camera.ScreenW) / 2

	for i, line := range lines {
		if i == cursor && seq.CursorOn {
			line += "_"
		}
		r.drawText(screen, line, cx, y+float64(i)*lineH, introTextScale, textColor, 1, text.AlignCenter)
	}

	r.drawText(screen, r.skipPrompt, cx, float64(r.camera.ScreenH)-40, hintTextScale, textColor, 0.4, text.AlignCenter)
}

func (r *RenderSystem) drawTerminal(screen *ebiten.Image, seq *components.TextSequenceComponent) {
	x, y := float32(50), float32(70)
	w, h := float32(r.camera.ScreenW)-100, float32(r.camera.ScreenH)-140
	vector.DrawFilledRect(screen, x, y, w, h, withAlpha(terminalBg, 0.94), false)
	vector.StrokeRect(screen, x, y, w, h, 2, terminalFg, false)

	lines := seq.Sequencer.VisibleLines(seq.State)
	cursor := seq.Sequencer.CursorLine(seq.State)
	lineH := glyphHeight*termTextScale + lineSpacing
	for i, line := range lines {
		if i == cursor && seq.CursorOn {
			line += "_"
		}
		r.drawText(screen, line, float64(x)+20, float64(y)+20+float64(i)*lineH, termTextScale, terminalFg, 1, text.AlignStart)
	}
}

func (r *RenderSystem) drawHint(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.HintTextComponent](r.entityManager) {
		hint, _ := ecs.GetComponent[*components.HintTextComponent](r.entityManager, id)
		if !hint.Visible || hint.Alpha <= 0 {
			continue
		}
		r.drawText(screen, hint.Text, float64(r.camera.ScreenW)/2, float64(r.camera.ScreenH)-32, hintTextScale, textColor, hint.Alpha, text.AlignCenter)
	}
}

func (r *RenderSystem) drawCard(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith1[*components.PhotoCardComponent](r.entityManager) {
		card, _ := ecs.GetComponent[*components.PhotoCardComponent](r.entityManager, id)
		if card.Scale <= 0.01 {
			continue
		}

		s := float32(card.Scale)
		cw, ch := 340*s, 420*s
		cx, cy := float32(r.camera.ScreenW)/2, float32(r.camera.ScreenH)/2
		x, y := cx-cw/2, cy-ch/2
		vector.DrawFilledRect(screen, x, y, cw, ch, cardPaper, true)
		vector.DrawFilledRect(screen, x+20*s, y+20*s, cw-40*s, 240*s, cardPhoto, true)

		// 照片里的小蛋糕
		vector.DrawFilledCircle(screen, cx, y+150*s, 60*s, withAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.7), true)
		vector.DrawFilledRect(screen, cx-3*s, y+70*s, 6*s, 30*s, flameOuterColor, true)

		if card.Scale < 0.6 {
			continue
		}
		ty := float64(y + 275*s)
		r.drawText(screen, card.Title, float64(cx), ty, cardTextScale, cardInk, 1, text.AlignCenter)

		lineH := glyphHeight + 4
		maxW := float64(cw - 40*s)
		ty += glyphHeight*cardTextScale + 10
		for _, caption := range card.Captions {
			for _, line := range utils.WrapText(caption, r.face, maxW) {
				r.drawText(screen, line, float64(cx), ty, 1, cardInk, 1, text.AlignCenter)
				ty += lineH
			}
		}
	}
}

// textBlockTop 返回垂直居中的文字块顶部 Y 坐标
func textBlockTop(lineCount int, lineHeight, screenH float64) float64 {
	if lineCount < 1 {
		lineCount = 1
	}
	return (screenH - float64(lineCount)*lineHeight) / 2
}

func (r *RenderSystem) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.RGBA, alpha float64, align text.Align) {
	if s == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LayoutOptions.PrimaryAlign = align
	text.Draw(screen, s, r.face, op)
}

func (r *RenderSystem) strokeWorldLine(screen *ebiten.Image, a, b utils.Vec3, width float64, clr color.RGBA) {
	pa, scale, ok1 := r.camera.Project(a)
	pb, _, ok2 := r.camera.Project(b)
	if !ok1 || !ok2 {
		return
	}
	vector.StrokeLine(screen, pa.X, pa.Y, pb.X, pb.Y, float32(width)*scale, clr, true)
}

func (r *RenderSystem) projectAll(points ...utils.Vec3) []utils.Point2 {
	out := make([]utils.Point2, 0, len(points))
	for _, p := range points {
		sp, _, ok := r.camera.Project(p)
		if !ok {
			return nil
		}
		out = append(out, sp)
	}
	return out
}

// fillPolygon 填充凸/凹多边形
func (r *RenderSystem) fillPolygon(dst *ebiten.Image, pts []utils.Point2, clr color.RGBA, alpha float64) {
	if len(pts) < 3 {
		return
	}

	var path vector.Path
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		path.LineTo(p.X, p.Y)
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR = float32(clr.R) / 0xff
		vs[i].ColorG = float32(clr.G) / 0xff
		vs[i].ColorB = float32(clr.B) / 0xff
		vs[i].ColorA = float32(alpha)
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true, FillRule: ebiten.FillRuleNonZero}
	dst.DrawTriangles(vs, is, r.whiteSubImage, op)
}

// withAlpha 返回预乘 alpha 后的颜色
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := utils.Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R)*a + 0.5),
		G: uint8(float64(c.G)*a + 0.5),
		B: uint8(float64(c.B)*a + 0.5),
		A: uint8(255*a + 0.5),
	}
}
