package i18n

import "testing"

func TestClassify(t *testing.T) {
	cases := map[string]Bucket{
		"zh":          Chinese,
		"zh-Hans":     Chinese,
		"zh_TW.UTF-8": Chinese,
		"en_HK":       Chinese,
		"en-CN":       Chinese,
		"en-US":       Default,
		"fr-FR":       Default,
		"ZH":          Default,
		"zh-cn":       Chinese,
		"en-cn":       Default,
		"C.UTF-8":     Default,
		"":            Default,
	}
	for tag, want := range cases {
		if got := Classify(tag); got != want {
			t.Errorf("Classify(%q)=%v want %v", tag, got, want)
		}
	}
}

func TestMessageForHint(t *testing.T) {
	s := Selector{Env: MapEnv{"LANG": "zh_CN.UTF-8"}}
	if got := s.MessageFor(Start, "en-US"); got != "Start downloading~" {
		t.Fatalf("got %q", got)
	}
	if got := s.MessageFor(Start, "zh-CN"); got != "开始下载中~" {
		t.Fatalf("got %q", got)
	}
	if got := s.MessageFor(Success, "fr-FR"); got != EnglishDownloadMessages.Success {
		t.Fatalf("hint must win over environment, got %q", got)
	}
	if got := s.MessageFor(Failure, "zh-TW"); got != "下载失败，请检查你的网络连接~" {
		t.Fatalf("got %q", got)
	}
}

func TestMessageFromEnvironment(t *testing.T) {
	cases := []struct {
		name string
		env  MapEnv
		want string
	}{
		{"nothing set", MapEnv{}, "Download successful, saved to download directory~"},
		{"LANG chinese", MapEnv{"LANG": "zh_CN.UTF-8"}, "下载成功，已保存到下载目录~"},
		{"LANG wins over LC_ALL", MapEnv{"LANG": "en_US.UTF-8", "LC_ALL": "zh_CN.UTF-8"}, "Download successful, saved to download directory~"},
		{"LC_ALL used when LANG unset", MapEnv{"LC_ALL": "zh_HK.UTF-8"}, "下载成功，已保存到下载目录~"},
		{"LANGUAGE last", MapEnv{"LANGUAGE": "zh_TW:zh"}, "下载成功，已保存到下载目录~"},
		{"empty but present stops the probe", MapEnv{"LANG": "", "LC_ALL": "zh_CN"}, "Download successful, saved to download directory~"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := Selector{Env: c.env}
			if got := s.Message(Success); got != c.want {
				t.Fatalf("got %q want %q", got, c.want)
			}
		})
	}
}

func TestResolveAndNilEnv(t *testing.T) {
	s := Selector{}
	if got := s.Message(Start); got != EnglishDownloadMessages.Start {
		t.Fatalf("nil env should default, got %q", got)
	}
	env := Selector{Env: MapEnv{"LANG": "zh_CN"}}
	if got := env.Resolve(Start, "", false); got != ChineseDownloadMessages.Start {
		t.Fatalf("absent hint should probe env, got %q", got)
	}
	if got := env.Resolve(Start, "", true); got != EnglishDownloadMessages.Start {
		t.Fatalf("present empty hint classifies as default, got %q", got)
	}
}

func TestParseMessageType(t *testing.T) {
	for _, k := range []MessageType{Start, Success, Failure} {
		got, err := ParseMessageType(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseMessageType(%q)=%v,%v", k.String(), got, err)
		}
	}
	if _, err := ParseMessageType("done"); err == nil {
		t.Fatalf("expected error")
	}
}
