package service

import "strings"

// SubjectOther 无法归类时的兜底学科标签
const SubjectOther = "Other"

// subjectGroup 一个学科标签及其关键词，关键词在归一化文本上做子串匹配
type subjectGroup struct {
	tag      string
	keywords []string
}

// 按序匹配，命中第一个即返回，顺序本身即优先级
var subjectGroups = []subjectGroup{
	{"Meteorology", []string{"weather", "meteorolog", "climate", "storm", "cloud", "wind", "precip", "hurricane", "tornado", "barometer"}},
	{"Physics", []string{"force", "motion", "velocity", "acceleration", "energy", "electric", "magnet", "wave", "optics", "thermo", "gravity"}},
	{"Chemistry", []string{"atom", "molecule", "compound", "reaction", "acid", "alkali", "salt", "periodic", "bond", "stoichi", "solution"}},
	{"Geography", []string{"map", "continent", "ocean", "river", "mountain", "platetectonics", "earthquake", "volcano", "latitude", "longitude", "biome", "landform"}},
	{"Biology", []string{"cell", "organism", "ecosystem", "photosynth", "respiration", "genetic", "dna", "evolution", "anatomy", "plant", "animal", "habitat"}},
	{"Astronomy", []string{"space", "planet", "star", "galaxy", "universe", "astronom", "solar", "orbit", "telescope", "cosmos", "comet", "asteroid", "lunar"}},
}

// ClassifySubject 把课程标题与主题文本映射到固定学科标签
// 成就的学科多样性统计和看板的学科分布共用这一个实现
func ClassifySubject(title, topic string) string {
	text := normalizeSubjectText(title + " " + topic)
	if text == "" {
		return SubjectOther
	}

	for _, group := range subjectGroups {
		for _, kw := range group.keywords {
			if strings.Contains(text, kw) {
				return group.tag
			}
		}
	}
	return SubjectOther
}

// normalizeSubjectText 转小写并去掉所有非字母数字字符
func normalizeSubjectText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
