package game

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/decker502/birthdaycard/pkg/config"
)

// 内置音频ID
const (
	SoundTypeClick = "SOUND_TYPE_CLICK"
	MusicBirthday  = "MUSIC_BIRTHDAY"
)

// AudioManager 音频管理器
// 职责：
//   - 管理打字音效和背景音乐的播放
//   - 用 tween 实现背景音乐的淡入淡出
//
// 音频是可选的协作者：没有音频上下文或播放器创建失败时只记录警告，
// 所有播放接口返回 false，动画逻辑不受影响。
type AudioManager struct {
	context *audio.Context

	soundData    map[string][]byte        // 音效 PCM（资源ID -> 数据）
	musicData    map[string][]byte        // 背景音乐 PCM
	soundPlayers map[string]*audio.Player // 音效播放器缓存

	currentMusic   *audio.Player
	currentMusicID string

	musicVolume float64
	soundVolume float64

	// 淡入淡出
	musicLevel  float64 // 当前实际音量（未开始播放时也会跟踪）
	fade        *gween.Tween
	stopOnFaded bool
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（静音模式）
//   - cfg: 音频配置
func NewAudioManager(ctx *audio.Context, cfg config.AudioConfig) *AudioManager {
	return &AudioManager{
		context:      ctx,
		soundData:    make(map[string][]byte),
		musicData:    make(map[string][]byte),
		soundPlayers: make(map[string]*audio.Player),
		musicVolume:  cfg.MusicVolume,
		soundVolume:  cfg.ClickVolume,
	}
}

// RegisterSound 注册音效 PCM（16-bit 小端立体声，采样率与上下文一致）
func (am *AudioManager) RegisterSound(soundID string, pcm []byte) {
	am.soundData[soundID] = pcm
	delete(am.soundPlayers, soundID)
}

// RegisterMusic 注册背景音乐 PCM（循环播放）
func (am *AudioManager) RegisterMusic(musicID string, pcm []byte) {
	am.musicData[musicID] = pcm
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.soundVolume)
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", soundID, err)
	}
	player.Play()
	return true
}

// PlayMusic 播放背景音乐，在 fadeIn 秒内从静音淡入到音乐音量
// 同一时间只能播放一首背景音乐
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayMusic(musicID string, fadeIn float64) bool {
	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}

	am.StopMusic()

	player := am.newMusicPlayer(musicID)
	if player == nil {
		return false
	}

	am.currentMusic = player
	am.currentMusicID = musicID
	am.startFade(0, am.musicVolume, fadeIn, false)
	player.Play()

	log.Printf("[AudioManager] Playing music: %s (volume: %.2f, fade-in: %.1fs)", musicID, am.musicVolume, fadeIn)
	return true
}

// FadeOutMusic 在 duration 秒内淡出并停止当前音乐
func (am *AudioManager) FadeOutMusic(duration float64) {
	if am.currentMusic == nil {
		return
	}
	am.startFade(am.musicLevel, 0, duration, true)
}

// StopMusic 立即停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		if err := am.currentMusic.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close music %s: %v", am.currentMusicID, err)
		}
	}
	am.currentMusic = nil
	am.currentMusicID = ""
	am.fade = nil
	am.stopOnFaded = false
}

// PauseMusic 暂停当前背景音乐
func (am *AudioManager) PauseMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
}

// ResumeMusic 恢复当前背景音乐
func (am *AudioManager) ResumeMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Play()
	}
}

// IsMusicPlaying 当前是否有背景音乐在播放
func (am *AudioManager) IsMusicPlaying() bool {
	return am.currentMusic != nil && am.currentMusic.IsPlaying()
}

// Update 推进淡入淡出，每个 tick 调用一次
func (am *AudioManager) Update(dt float64) {
	if am.fade == nil {
		return
	}

	level, finished := am.fade.Update(float32(dt))
	am.setMusicLevel(float64(level))

	if finished {
		am.fade = nil
		if am.stopOnFaded {
			am.StopMusic()
		}
	}
}

// SetMusicVolume 设置音乐音量，立即应用到当前音乐（进行中的淡入淡出会被取消）
func (am *AudioManager) SetMusicVolume(volume float64) {
	am.musicVolume = volume
	am.fade = nil
	am.setMusicLevel(volume)
}

// SetSoundVolume 设置音效音量
func (am *AudioManager) SetSoundVolume(volume float64) {
	am.soundVolume = volume
	for _, player := range am.soundPlayers {
		player.SetVolume(volume)
	}
}

// GetMusicVolume 获取音乐音量设置
func (am *AudioManager) GetMusicVolume() float64 {
	return am.musicVolume
}

// GetSoundVolume 获取音效音量设置
func (am *AudioManager) GetSoundVolume() float64 {
	return am.soundVolume
}

// MusicLevel 当前音乐实际音量（含淡入淡出）
func (am *AudioManager) MusicLevel() float64 {
	return am.musicLevel
}

// IsFading 是否处于淡入淡出中
func (am *AudioManager) IsFading() bool {
	return am.fade != nil
}

func (am *AudioManager) startFade(from, to, duration float64, stopWhenDone bool) {
	if duration <= 0 {
		am.fade = nil
		am.setMusicLevel(to)
		if stopWhenDone {
			am.StopMusic()
		}
		return
	}
	am.fade = gween.New(float32(from), float32(to), float32(duration), ease.OutQuad)
	am.stopOnFaded = stopWhenDone
	am.setMusicLevel(from)
}

func (am *AudioManager) setMusicLevel(level float64) {
	am.musicLevel = level
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(level)
	}
}

// getSoundPlayer 获取或创建音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	if am.context == nil {
		return nil
	}

	pcm, exists := am.soundData[soundID]
	if !exists {
		log.Printf("[AudioManager] Warning: Sound not found: %s", soundID)
		return nil
	}

	player := am.context.NewPlayerFromBytes(pcm)
	am.soundPlayers[soundID] = player
	return player
}

// newMusicPlayer 为背景音乐创建循环播放器
func (am *AudioManager) newMusicPlayer(musicID string) *audio.Player {
	if am.context == nil {
		return nil
	}

	pcm, exists := am.musicData[musicID]
	if !exists {
		log.Printf("[AudioManager] Warning: Music not found: %s", musicID)
		return nil
	}

	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	player, err := am.context.NewPlayer(loop)
	if err != nil {
		log.Printf("[AudioManager] Warning: Failed to create music player %s: %v", musicID, err)
		return nil
	}
	return player
}
