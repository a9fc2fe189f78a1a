package mindmap

// DefaultPalette 默认的分支颜色
var DefaultPalette = []string{
	"#3498db", "#e74c3c", "#2ecc71", "#f39c12",
	"#9b59b6", "#1abc9c", "#34495e", "#e67e22",
}

// DefaultTheme 返回默认主题的副本,调用者可以随意修改
func DefaultTheme() *Theme {
	return &Theme{
		Name:    "Latte",
		Palette: append([]string(nil), DefaultPalette...),
		CSSVar: map[string]string{
			"--gap":                "30px",
			"--main-color":         "#444446",
			"--main-bgcolor":       "#ffffff",
			"--color":              "#777777",
			"--bgcolor":            "#f6f6f6",
			"--selected":           "#4dc4ff",
			"--root-color":         "#ffffff",
			"--root-bgcolor":       "#4c4f69",
			"--root-border-color":  "rgba(0, 0, 0, 0)",
			"--panel-color":        "#444446",
			"--panel-bgcolor":      "#ffffff",
			"--panel-border-color": "#eaeaea",
		},
	}
}
