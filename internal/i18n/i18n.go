package i18n

// Language selects the UI string set.
type Language string

const (
	English Language = "en"
	Chinese Language = "zh"
)

type Strings struct {
	Error   string
	Offline string

	PinnedSection string
	AllCategories string
	NoLinks       string
	LockedHint    string

	SyncIdle     string
	SyncSaving   string
	SyncSaved    string
	SyncError    string
	AuthRequired string

	PromptUnlock   string
	PromptLogin    string
	PromptSearch   string
	WrongPassword  string
	LoginFailed    string
	LoginOK        string
	FormTitle      string
	FormURL        string
	FormDesc       string

	KeyUp       string
	KeyDown     string
	KeyOpen     string
	KeyNew      string
	KeyDelete   string
	KeyPin      string
	KeySearch   string
	KeyCategory string
	KeyLogin    string
	KeyTheme    string
	KeyQuit     string
	KeyEscape   string
}

var current = English

var translations = map[Language]Strings{
	English: {
		Error:   "Error",
		Offline: "offline mode",

		PinnedSection: "Pinned",
		AllCategories: "All",
		NoLinks:       "No links",
		LockedHint:    "locked",

		SyncIdle:     "",
		SyncSaving:   "saving…",
		SyncSaved:    "saved",
		SyncError:    "sync failed",
		AuthRequired: "session expired, please log in again",

		PromptUnlock:  "Category password",
		PromptLogin:   "Sync password",
		PromptSearch:  "Search",
		WrongPassword: "wrong password",
		LoginFailed:   "login failed",
		LoginOK:       "logged in",
		FormTitle:     "Title",
		FormURL:       "URL",
		FormDesc:      "Description",

		KeyUp:       "up",
		KeyDown:     "down",
		KeyOpen:     "open",
		KeyNew:      "new link",
		KeyDelete:   "delete",
		KeyPin:      "pin/unpin",
		KeySearch:   "search",
		KeyCategory: "category",
		KeyLogin:    "login",
		KeyTheme:    "theme",
		KeyQuit:     "quit",
		KeyEscape:   "back",
	},
	Chinese: {
		Error:   "错误",
		Offline: "离线模式",

		PinnedSection: "置顶",
		AllCategories: "全部",
		NoLinks:       "暂无链接",
		LockedHint:    "已锁定",

		SyncIdle:     "",
		SyncSaving:   "保存中…",
		SyncSaved:    "已保存",
		SyncError:    "同步失败",
		AuthRequired: "登录已失效，请重新登录",

		PromptUnlock:  "分类密码",
		PromptLogin:   "同步密码",
		PromptSearch:  "搜索",
		WrongPassword: "密码错误",
		LoginFailed:   "登录失败",
		LoginOK:       "登录成功",
		FormTitle:     "标题",
		FormURL:       "网址",
		FormDesc:      "描述",

		KeyUp:       "上移",
		KeyDown:     "下移",
		KeyOpen:     "打开",
		KeyNew:      "新建链接",
		KeyDelete:   "删除",
		KeyPin:      "置顶/取消",
		KeySearch:   "搜索",
		KeyCategory: "分类",
		KeyLogin:    "登录",
		KeyTheme:    "主题",
		KeyQuit:     "退出",
		KeyEscape:   "返回",
	},
}

func SetLanguage(lang Language) {
	if _, ok := translations[lang]; ok {
		current = lang
	}
}

// T returns the active string set.
func T() Strings {
	return translations[current]
}
