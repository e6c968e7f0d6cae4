package domain

// EntityKind перечисляет известные типы текстовых сущностей экспорта.
type EntityKind int

const (
	KindUnknown EntityKind = iota
	KindPlain
	KindBold
	KindItalic
	KindCode
	KindLink
	KindTextLink
	KindEmail
	KindHashtag
	KindMention
	KindMentionName
)

var kindNames = map[string]EntityKind{
	"plain":        KindPlain,
	"bold":         KindBold,
	"italic":       KindItalic,
	"code":         KindCode,
	"link":         KindLink,
	"text_link":    KindTextLink,
	"email":        KindEmail,
	"hashtag":      KindHashtag,
	"mention":      KindMention,
	"mention_name": KindMentionName,
}

// ParseEntityKind переводит строковый тип из JSON в EntityKind.
// Незнакомые типы дают KindUnknown.
func ParseEntityKind(s string) EntityKind {
	if k, ok := kindNames[s]; ok {
		return k
	}
	return KindUnknown
}

func (k EntityKind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

// Category - именованная коллекция, в которую складываются не-plain сущности.
type Category string

const (
	CategoryEmail       Category = "email"
	CategoryCode        Category = "code"
	CategoryItalic      Category = "italic"
	CategoryMention     Category = "mention"
	CategoryMentionName Category = "mention_name"
	CategoryHashtag     Category = "hashtag"
	CategoryTextLink    Category = "text_link"
	CategoryBold        Category = "bold"
	CategoryLink        Category = "link"
)

// AllCategories перечисляет категории в фиксированном порядке вывода.
var AllCategories = []Category{
	CategoryEmail,
	CategoryCode,
	CategoryItalic,
	CategoryMention,
	CategoryMentionName,
	CategoryHashtag,
	CategoryTextLink,
	CategoryBold,
	CategoryLink,
}

// Category возвращает категорию для типа сущности.
// Для plain и неизвестных типов второе значение false.
func (k EntityKind) Category() (Category, bool) {
	switch k {
	case KindEmail:
		return CategoryEmail, true
	case KindCode:
		return CategoryCode, true
	case KindItalic:
		return CategoryItalic, true
	case KindMention:
		return CategoryMention, true
	case KindMentionName:
		return CategoryMentionName, true
	case KindHashtag:
		return CategoryHashtag, true
	case KindTextLink:
		return CategoryTextLink, true
	case KindBold:
		return CategoryBold, true
	case KindLink:
		return CategoryLink, true
	case KindPlain, KindUnknown:
		return "", false
	}
	return "", false
}
