// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"regexp"
	"sort"

	"github.com/emazzini/visura-engine/pkg/types"
)

// technology is one detectable technology with its alias vocabulary.
// Longer aliases score higher per mention, so "amazon web services"
// outweighs an ambiguous "go".
type technology struct {
	name     string
	category string
	aliases  []string
}

var technologies = []technology{
	// Programming languages and frameworks.
	{"java", "programming", []string{"java", "jvm", "spring", "hibernate"}},
	{"python", "programming", []string{"python", "django", "flask", "pandas", "numpy"}},
	{"javascript", "programming", []string{"javascript", "js", "node.js", "nodejs"}},
	{"react", "programming", []string{"react", "reactjs", "jsx"}},
	{"angular", "programming", []string{"angular", "angularjs", "typescript"}},
	{"vue", "programming", []string{"vue", "vuejs", "vue.js"}},
	{"php", "programming", []string{"php", "laravel", "symfony", "wordpress"}},
	{"c#", "programming", []string{"c#", "csharp", ".net", "dotnet", "asp.net"}},
	{"c++", "programming", []string{"c++", "cpp"}},
	{"go", "programming", []string{"golang", "go"}},
	{"rust", "programming", []string{"rust"}},
	{"kotlin", "programming", []string{"kotlin"}},
	{"swift", "programming", []string{"swift"}},
	{"ruby", "programming", []string{"ruby", "rails", "ruby on rails"}},

	// Cloud and infrastructure.
	{"aws", "cloud", []string{"aws", "amazon web services", "ec2", "s3", "lambda"}},
	{"azure", "cloud", []string{"azure", "microsoft azure"}},
	{"google cloud", "cloud", []string{"google cloud", "gcp", "google cloud platform"}},
	{"docker", "cloud", []string{"docker", "containerization"}},
	{"kubernetes", "cloud", []string{"kubernetes", "k8s", "container orchestration"}},
	{"terraform", "cloud", []string{"terraform", "infrastructure as code"}},
	{"ansible", "cloud", []string{"ansible", "automation"}},
	{"jenkins", "cloud", []string{"jenkins", "ci/cd"}},
	{"gitlab", "cloud", []string{"gitlab", "git"}},
	{"github", "cloud", []string{"github"}},

	// Databases.
	{"mysql", "databases", []string{"mysql"}},
	{"postgresql", "databases", []string{"postgresql", "postgres"}},
	{"mongodb", "databases", []string{"mongodb", "mongo"}},
	{"redis", "databases", []string{"redis", "cache"}},
	{"elasticsearch", "databases", []string{"elasticsearch", "elastic", "elk"}},
	{"oracle", "databases", []string{"oracle", "oracle db"}},
	{"sql server", "databases", []string{"sql server", "mssql"}},
	{"cassandra", "databases", []string{"cassandra"}},
	{"neo4j", "databases", []string{"neo4j", "graph database"}},

	// Operating systems and virtualization.
	{"linux", "systems", []string{"linux", "ubuntu", "centos", "redhat", "debian"}},
	{"windows", "systems", []string{"windows", "windows server"}},
	{"vmware", "systems", []string{"vmware", "vsphere", "vcenter"}},
	{"citrix", "systems", []string{"citrix", "xenapp", "xendesktop"}},
	{"hyper-v", "systems", []string{"hyper-v", "hyperv"}},

	// Networking and security.
	{"cisco", "networking", []string{"cisco", "catalyst", "nexus", "asa"}},
	{"juniper", "networking", []string{"juniper", "junos"}},
	{"fortinet", "networking", []string{"fortinet", "fortigate"}},
	{"palo alto", "networking", []string{"palo alto", "paloalto", "pan-os"}},
	{"checkpoint", "networking", []string{"checkpoint", "check point"}},
	{"f5", "networking", []string{"f5", "big-ip"}},
	{"nginx", "networking", []string{"nginx"}},
	{"apache", "networking", []string{"apache", "httpd"}},

	// Business applications.
	{"sap", "business", []string{"sap", "sap erp", "sap hana"}},
	{"salesforce", "business", []string{"salesforce", "sfdc"}},
	{"microsoft 365", "business", []string{"microsoft 365", "office 365", "o365"}},
	{"sharepoint", "business", []string{"sharepoint"}},
	{"dynamics", "business", []string{"dynamics", "dynamics 365"}},
	{"servicenow", "business", []string{"servicenow"}},
	{"jira", "business", []string{"jira", "atlassian"}},
	{"confluence", "business", []string{"confluence"}},

	// Data and analytics.
	{"tableau", "analytics", []string{"tableau"}},
	{"power bi", "analytics", []string{"power bi", "powerbi"}},
	{"qlik", "analytics", []string{"qlik", "qlikview", "qliksense"}},
	{"splunk", "analytics", []string{"splunk"}},
	{"hadoop", "analytics", []string{"hadoop", "big data"}},
	{"spark", "analytics", []string{"apache spark", "spark"}},
	{"kafka", "analytics", []string{"kafka", "apache kafka"}},

	// AI and machine learning.
	{"tensorflow", "ai_ml", []string{"tensorflow"}},
	{"pytorch", "ai_ml", []string{"pytorch"}},
	{"scikit-learn", "ai_ml", []string{"scikit-learn", "sklearn"}},
	{"opencv", "ai_ml", []string{"opencv"}},
	{"nlp", "ai_ml", []string{"nlp", "natural language processing"}},
	{"machine learning", "ai_ml", []string{"machine learning", "ml", "artificial intelligence", "ai"}},

	// Mobile and frontend.
	{"android", "mobile", []string{"android", "kotlin", "java android"}},
	{"ios", "mobile", []string{"ios", "swift", "objective-c"}},
	{"react native", "mobile", []string{"react native"}},
	{"flutter", "mobile", []string{"flutter", "dart"}},
	{"xamarin", "mobile", []string{"xamarin"}},
}

// aliasRes holds one compiled word-boundary pattern per alias, keyed by
// alias text. Built once; aliases repeat across technologies (kotlin,
// swift) and share the compiled form.
var aliasRes = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp)
	for _, tech := range technologies {
		for _, alias := range tech.aliases {
			if _, ok := res[alias]; !ok {
				res[alias] = regexp.MustCompile(`\b` + regexp.QuoteMeta(alias) + `\b`)
			}
		}
	}
	return res
}()

type techScore struct {
	tech     technology
	score    float64
	keywords []string
}

// DetectTechnologyStack scans lowercased content for every known
// technology alias and ranks the hits. Each alias mention contributes
// its length divided by five, so specific multi-word aliases dominate
// generic short ones.
func DetectTechnologyStack(lower string) types.TechnologyStack {
	var found []techScore
	for _, tech := range technologies {
		var score float64
		var keywords []string
		for _, alias := range tech.aliases {
			matches := len(aliasRes[alias].FindAllString(lower, -1))
			if matches > 0 {
				score += float64(matches) * float64(len(alias)) / 5.0
				keywords = append(keywords, alias)
			}
		}
		if score > 0 {
			found = append(found, techScore{tech: tech, score: score, keywords: keywords})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].score != found[j].score {
			return found[i].score > found[j].score
		}
		return found[i].tech.name < found[j].tech.name
	})

	if len(found) > 25 {
		found = found[:25]
	}

	stack := types.TechnologyStack{}
	categories := make(map[string]bool)
	for _, f := range found {
		stack.Detailed = append(stack.Detailed, types.TechnologyMatch{
			Technology: f.tech.name,
			Category:   f.tech.category,
			Confidence: saturate(f.score / 10.0),
			Keywords:   capStrings(f.keywords, 3),
			Mentions:   int(f.score),
		})
		categories[f.tech.category] = true
	}
	for i, match := range stack.Detailed {
		if i == 15 {
			break
		}
		stack.Simple = append(stack.Simple, match.Technology)
	}
	stack.TotalTechnologies = len(stack.Detailed)
	stack.CategoriesCovered = len(categories)
	return stack
}
