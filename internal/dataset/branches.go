package dataset

import "regexp"

// branchInfo maps a 3-letter roll number code to the parent branch and
// the full specialization name.
type branchInfo struct {
	Parent         string
	Specialization string
}

// Roll numbers look like 2023UCB6036: a 4-digit admission year followed
// by a 3-letter branch code.
var rollBranchPattern = regexp.MustCompile(`[0-9]{4}([A-Z]{3})`)

var branchCodes = map[string]branchInfo{
	"UBT": {"BIO-TECH", "Bio Technology"},
	"UCE": {"CE", "Civil Engineering"},
	"UCS": {"CSE", "Computer Science Engineering"},
	"UCA": {"CSE", "Artificial Intelligence (CSAI)"},
	"UCD": {"CSE", "Data Science (CSDS)"},
	"UCM": {"MAC", "Mathematics and Computing"},
	"UCB": {"CSE", "Big Data Analytics (CSDA)"},
	"UCI": {"CSE", "IoT (CIOT)"},
	"UEE": {"EE", "Electrical Engineering"},
	"UEC": {"ECE", "Electronics & Communication"},
	"UEI": {"ECE", "ECE - IoT (EIOT)"},
	"UEA": {"ECE", "ECE - AI (ECAM)"},
	"UCG": {"GI", "Geoinformatics"},
	"UIT": {"IT", "Information Technology"},
	"UIN": {"IT", "IT - Network Security (ITNS)"},
	"UIC": {"ICE", "Instrumentation & Control"},
	"UME": {"ME", "Mechanical Engineering"},
	"UMV": {"ME", "Mechanical Engineering (MEEV)"},
}

// branchFromRoll extracts the branch code embedded in a roll number and
// resolves it against the known code table. The second return value is
// false when the roll number carries no recognizable code.
func branchFromRoll(roll string) (branchInfo, bool) {
	m := rollBranchPattern.FindStringSubmatch(roll)
	if m == nil {
		return branchInfo{}, false
	}
	info, ok := branchCodes[m[1]]
	return info, ok
}
