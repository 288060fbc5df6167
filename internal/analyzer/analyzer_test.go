package analyzer

import (
	"reflect"
	"testing"
)

func TestAnalyzeExtractsFeatures(t *testing.T) {
	resume := "Senior engineer with React and Node.js.\n" +
		"Project: chat app\n" +
		"Worked on web development and fintech platforms."

	analysis := Analyze(resume)

	if analysis.ExperienceLevel != LevelSenior {
		t.Fatalf("experience level: got %q, want %q", analysis.ExperienceLevel, LevelSenior)
	}
	wantTech := []string{"react", "node.js"}
	if !reflect.DeepEqual(analysis.Technologies, wantTech) {
		t.Fatalf("technologies: got %v, want %v", analysis.Technologies, wantTech)
	}
	if len(analysis.Projects) != 1 || analysis.Projects[0] != "chat app" {
		t.Fatalf("projects: got %v, want [chat app]", analysis.Projects)
	}
	wantDomains := []string{"web development", "fintech"}
	if !reflect.DeepEqual(analysis.Domains, wantDomains) {
		t.Fatalf("domains: got %v, want %v", analysis.Domains, wantDomains)
	}
}

func TestAnalyzeEmptyInputDefaults(t *testing.T) {
	analysis := Analyze("")
	if analysis.ExperienceLevel != LevelEntry {
		t.Fatalf("experience level: got %q, want %q", analysis.ExperienceLevel, LevelEntry)
	}
	if len(analysis.Technologies) != 0 || len(analysis.Projects) != 0 || len(analysis.Domains) != 0 {
		t.Fatalf("expected empty feature lists, got %+v", analysis)
	}
	if analysis.Technologies == nil || analysis.Projects == nil || analysis.Domains == nil {
		t.Fatal("feature lists must be initialized, not nil")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	resume := "Mid-level Python developer.\nProjects: billing service"
	first := Analyze(resume)
	for i := 0; i < 5; i++ {
		if got := Analyze(resume); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: got %+v, want %+v", i, got, first)
		}
	}
}

func TestAnalyzeExperiencePriority(t *testing.T) {
	cases := []struct {
		name   string
		resume string
		want   string
	}{
		{"senior beats junior", "senior developer, formerly junior", LevelSenior},
		{"mid beats entry", "experienced intern mentor", LevelMid},
		{"entry indicator", "new grad seeking first role", LevelEntry},
		{"no indicator defaults", "software developer", LevelEntry},
		{"years form", "7+ years building services", LevelSenior},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Analyze(tc.resume).ExperienceLevel; got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestAnalyzeProjectsCappedAtThree(t *testing.T) {
	resume := "Project: one\nProject: two\nProject: three\nProject: four"
	analysis := Analyze(resume)
	if len(analysis.Projects) != 3 {
		t.Fatalf("projects: got %d, want 3", len(analysis.Projects))
	}
	if analysis.Projects[2] != "three" {
		t.Fatalf("third project: got %q, want %q", analysis.Projects[2], "three")
	}
}
