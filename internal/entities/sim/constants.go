// Package sim holds the simulator entities a build refers to: classes, races,
// specs, stats and gear.
package sim

// Class constants
const (
	ClassUnknown     Class = ""
	ClassDeathKnight Class = "CLASS_DEATH_KNIGHT"
	ClassDruid       Class = "CLASS_DRUID"
	ClassHunter      Class = "CLASS_HUNTER"
	ClassMage        Class = "CLASS_MAGE"
	ClassPaladin     Class = "CLASS_PALADIN"
	ClassPriest      Class = "CLASS_PRIEST"
	ClassRogue       Class = "CLASS_ROGUE"
	ClassShaman      Class = "CLASS_SHAMAN"
	ClassWarlock     Class = "CLASS_WARLOCK"
	ClassWarrior     Class = "CLASS_WARRIOR"
)

// Race constants
const (
	RaceUnknown  Race = ""
	RaceBloodElf Race = "RACE_BLOOD_ELF"
	RaceDraenei  Race = "RACE_DRAENEI"
	RaceDwarf    Race = "RACE_DWARF"
	RaceGnome    Race = "RACE_GNOME"
	RaceHuman    Race = "RACE_HUMAN"
	RaceNightElf Race = "RACE_NIGHT_ELF"
	RaceOrc      Race = "RACE_ORC"
	RaceTauren   Race = "RACE_TAUREN"
	RaceTroll    Race = "RACE_TROLL"
	RaceUndead   Race = "RACE_UNDEAD"
)

// Spec constants
const (
	SpecUnknown            Spec = ""
	SpecBalanceDruid       Spec = "SPEC_BALANCE_DRUID"
	SpecEnhancementShaman  Spec = "SPEC_ENHANCEMENT_SHAMAN"
	SpecWarrior            Spec = "SPEC_WARRIOR"
	SpecFrostDeathKnight   Spec = "SPEC_FROST_DEATH_KNIGHT"
	SpecElementalShaman    Spec = "SPEC_ELEMENTAL_SHAMAN"
	SpecProtectionWarrior  Spec = "SPEC_PROTECTION_WARRIOR"
	SpecRetributionPaladin Spec = "SPEC_RETRIBUTION_PALADIN"
)

// Class identifies a playable class
type Class string

// Race identifies a playable race
type Race string

// Spec identifies a class specialization the simulator has a UI for
type Spec string

var classNames = map[Class]string{
	ClassDeathKnight: "Death Knight",
	ClassDruid:       "Druid",
	ClassHunter:      "Hunter",
	ClassMage:        "Mage",
	ClassPaladin:     "Paladin",
	ClassPriest:      "Priest",
	ClassRogue:       "Rogue",
	ClassShaman:      "Shaman",
	ClassWarlock:     "Warlock",
	ClassWarrior:     "Warrior",
}

// DisplayName returns the human readable class name, e.g. "Death Knight"
func (c Class) DisplayName() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether c is a known class
func (c Class) Valid() bool {
	_, ok := classNames[c]
	return ok
}

var raceNames = map[Race]string{
	RaceBloodElf: "Blood Elf",
	RaceDraenei:  "Draenei",
	RaceDwarf:    "Dwarf",
	RaceGnome:    "Gnome",
	RaceHuman:    "Human",
	RaceNightElf: "Night Elf",
	RaceOrc:      "Orc",
	RaceTauren:   "Tauren",
	RaceTroll:    "Troll",
	RaceUndead:   "Undead",
}

// DisplayName returns the human readable race name
func (r Race) DisplayName() string {
	if name, ok := raceNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Valid reports whether r is a known race
func (r Race) Valid() bool {
	_, ok := raceNames[r]
	return ok
}
