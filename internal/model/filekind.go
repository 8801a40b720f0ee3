package model

// FileKind 接口计划文件类型（六种）
type FileKind int

const (
	KindGeneral     FileKind = 1 // 总体接口计划
	KindRoomOne     FileKind = 2 // 一室接口计划
	KindRoomTwo     FileKind = 3 // 二室接口计划
	KindSitePlan    FileKind = 4 // 建筑总图室接口计划
	KindThreeD      FileKind = 5 // 三维接口
	KindDeliverable FileKind = 6 // 近期提资审查
)

// AllKinds 全部文件类型，按编号顺序
var AllKinds = []FileKind{
	KindGeneral, KindRoomOne, KindRoomTwo,
	KindSitePlan, KindThreeD, KindDeliverable,
}

// Valid 判断编号是否为已知类型
func (k FileKind) Valid() bool {
	return k >= KindGeneral && k <= KindDeliverable
}

// String 返回类型的中文名称
func (k FileKind) String() string {
	switch k {
	case KindGeneral:
		return "总体接口计划"
	case KindRoomOne:
		return "一室接口计划"
	case KindRoomTwo:
		return "二室接口计划"
	case KindSitePlan:
		return "建筑总图室接口计划"
	case KindThreeD:
		return "三维接口"
	case KindDeliverable:
		return "近期提资审查"
	default:
		return "未知类型"
	}
}
