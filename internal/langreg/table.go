package langreg

// languageTable is the static, declaration-order language list. Order
// matters for two things: it is the tie-break when two extensions collide,
// and IterLanguages falls back to it before re-sorting by display name.
func languageTable() []LanguageRules {
	return []LanguageRules{
		{
			ID:                  C,
			DisplayName:         "C",
			Extensions:          []string{"c"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:          CHeader,
			DisplayName: "C Header",
			Extensions:  []string{"h"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:          Cpp,
			DisplayName: "C++",
			Extensions:  []string{"cpp", "cc", "cxx"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:          CppHeader,
			DisplayName: "C++ Header",
			Extensions:  []string{"hpp", "hh", "hxx"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:          Rust,
			DisplayName: "Rust",
			Extensions:  []string{"rs"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			NestedBlocksAllowed: true,
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
			},
		},
		{
			ID:          Go,
			DisplayName: "Go",
			Extensions:  []string{"go"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: "`", Close: "`", Escape: 0},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:          JavaScript,
			DisplayName: "JavaScript",
			Extensions:  []string{"js", "mjs", "cjs"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
				{Open: "`", Close: "`", Escape: '\\'},
			},
		},
		{
			ID:          TypeScript,
			DisplayName: "TypeScript",
			Extensions:  []string{"ts"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
				{Open: "`", Close: "`", Escape: '\\'},
			},
		},
		{
			ID:          Jsx,
			DisplayName: "JSX",
			Extensions:  []string{"jsx"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
				{Open: "`", Close: "`", Escape: '\\'},
			},
		},
		{
			ID:          Tsx,
			DisplayName: "TSX",
			Extensions:  []string{"tsx"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
				{Open: "`", Close: "`", Escape: '\\'},
			},
		},
		{
			ID:          Python,
			DisplayName: "Python",
			Extensions:  []string{"py", "pyw"},
			LineCommentPrefixes: []string{"#"},
			StringDelimiters: []StringDelimiter{
				{Open: `"""`, Close: `"""`, Escape: '\\'},
				{Open: "'''", Close: "'''", Escape: '\\'},
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:          Java,
			DisplayName: "Java",
			Extensions:  []string{"java"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:          CSharp,
			DisplayName: "C#",
			Extensions:  []string{"cs"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:                  Haskell,
			DisplayName:         "Haskell",
			Extensions:          []string{"hs"},
			LineCommentPrefixes: []string{"--"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "{-", Close: "-}"},
			},
			NestedBlocksAllowed: true,
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
			},
		},
		{
			ID:          Scala,
			DisplayName: "Scala",
			Extensions:  []string{"scala"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			NestedBlocksAllowed: true,
			StringDelimiters: []StringDelimiter{
				{Open: `"""`, Close: `"""`, Escape: 0},
				{Open: `"`, Close: `"`, Escape: '\\'},
			},
		},
		{
			ID:          Kotlin,
			DisplayName: "Kotlin",
			Extensions:  []string{"kt", "kts"},
			LineCommentPrefixes: []string{"//"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			NestedBlocksAllowed: true,
			StringDelimiters: []StringDelimiter{
				{Open: `"""`, Close: `"""`, Escape: 0},
				{Open: `"`, Close: `"`, Escape: '\\'},
			},
		},
		{
			ID:                  Bash,
			DisplayName:         "Bash",
			Extensions:          []string{"bash"},
			Filenames:           []string{".bashrc", ".bash_profile"},
			LineCommentPrefixes: []string{"#"},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: 0},
			},
		},
		{
			ID:                  Sh,
			DisplayName:         "Shell",
			Extensions:          []string{"sh"},
			LineCommentPrefixes: []string{"#"},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: 0},
			},
		},
		{
			ID:          Ruby,
			DisplayName: "Ruby",
			Extensions:  []string{"rb"},
			Filenames:   []string{"Rakefile", "Gemfile"},
			LineCommentPrefixes: []string{"#"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "=begin", Close: "=end"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:                  SQL,
			DisplayName:         "SQL",
			Extensions:          []string{"sql"},
			LineCommentPrefixes: []string{"--"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `'`, Close: `'`, Escape: 0},
			},
		},
		{
			ID:                  Html,
			DisplayName:         "HTML",
			Extensions:          []string{"html", "htm"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "<!--", Close: "-->"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: 0},
				{Open: `'`, Close: `'`, Escape: 0},
			},
		},
		{
			ID:          Css,
			DisplayName: "CSS",
			Extensions:  []string{"css"},
			BlockCommentDelimiters: []BlockDelimiter{
				{Open: "/*", Close: "*/"},
			},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: '\\'},
			},
		},
		{
			ID:          Json,
			DisplayName: "JSON",
			Extensions:  []string{"json"},
			IsLiterate:  true,
		},
		{
			ID:                  Yaml,
			DisplayName:         "YAML",
			Extensions:          []string{"yaml", "yml"},
			LineCommentPrefixes: []string{"#"},
			StringDelimiters: []StringDelimiter{
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: 0},
			},
		},
		{
			ID:                  Toml,
			DisplayName:         "TOML",
			Extensions:          []string{"toml"},
			LineCommentPrefixes: []string{"#"},
			StringDelimiters: []StringDelimiter{
				{Open: `"""`, Close: `"""`, Escape: '\\'},
				{Open: `"`, Close: `"`, Escape: '\\'},
				{Open: `'`, Close: `'`, Escape: 0},
			},
		},
		{
			ID:          Markdown,
			DisplayName: "Markdown",
			Extensions:  []string{"md", "markdown"},
			IsLiterate:  true,
		},
		{
			ID:          Text,
			DisplayName: "Plain Text",
			Extensions:  []string{"txt"},
			IsLiterate:  true,
		},
		{
			ID:          PlainText,
			DisplayName: "Plain Text (unrecognized)",
			IsLiterate:  true,
		},
	}
}
