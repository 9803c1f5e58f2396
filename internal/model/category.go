package model

// 壁纸分类
const (
	CategoryLordKrishna = "lord_krishna"
	CategoryLordRam     = "lord_ram"
	CategoryLordKarna   = "lord_karna"
	CategoryLordArjun   = "lord_arjun"
	CategoryLordShiva   = "lord_shiva"
	CategoryLordVishnu  = "lord_vishnu"
	CategoryLordGanesha = "lord_ganesha"
	CategoryLordHanuman = "lord_hanuman"
	CategoryLordBrahma  = "lord_brahma"
	CategoryLordIndra   = "lord_indra"
	CategoryLordSurya   = "lord_surya"
	CategoryOthers      = "others"
)

// 壁纸风格
const (
	StyleAnime = "anime" // 动漫风格
	StyleReal  = "real"  // 写实风格
)

// FilterAll 查询参数中表示"不过滤"的取值
const FilterAll = "all"

// Categories 所有分类，顺序即首页分类展示顺序
var Categories = []string{
	CategoryLordKrishna,
	CategoryLordRam,
	CategoryLordKarna,
	CategoryLordArjun,
	CategoryLordShiva,
	CategoryLordVishnu,
	CategoryLordGanesha,
	CategoryLordHanuman,
	CategoryLordBrahma,
	CategoryLordIndra,
	CategoryLordSurya,
	CategoryOthers,
}

// Styles 所有壁纸风格
var Styles = []string{StyleAnime, StyleReal}

// IsCategory 判断是否是合法分类
func IsCategory(s string) bool {
	return contains(Categories, s)
}

// IsStyle 判断是否是合法风格
func IsStyle(s string) bool {
	return contains(Styles, s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
