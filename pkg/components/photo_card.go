package components

// PhotoCardComponent 照片卡片浮层
// Scale 由弹簧驱动，0 = 收起，1 = 完全展开
type PhotoCardComponent struct {
	Open     bool
	Scale    float64
	Velocity float64
	Settled  bool

	Title    string
	Captions []string
}
