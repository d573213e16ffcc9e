// Package testutil provides a small synthetic card database for tests.
package testutil

import (
	"github.com/arcanaland/deckwright/internal/card"
	"github.com/arcanaland/deckwright/internal/metadata"
)

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Taboo set ids used by the fixture.
const (
	TabooSet = 7
)

// Investigator codes used by the fixture.
const (
	Roland        = "01001" // guardian, signature cards, seeker 0-2
	Jenny         = "02003" // rogue, random basic weakness source
	Lola          = "03006" // atleast across factions
	FactionPicker = "60201" // faction_select
	OptionPicker  = "60101" // option_select
	SizePicker    = "60301" // deck_size_select
	Spiritualist  = "60401" // extra deck
)

func investigator(code, name, faction, traits string, size int, options []card.DeckOption) *card.Card {
	return &card.Card{
		Code:        code,
		Name:        name,
		RealName:    name,
		FactionCode: faction,
		TypeCode:    card.TypeInvestigator,
		PackCode:    "core",
		Quantity:    1,
		Traits:      traits,
		Health:      Int(7),
		Sanity:      Int(7),
		DeckOptions: options,
		DeckRequirements: &card.DeckRequirements{
			Size:   size,
			Random: []card.RandomRequirement{{Target: "subtype", Value: card.SubtypeBasicWeakness}},
		},
	}
}

func player(code, name, faction, typ string, xp, cost int, traits string) *card.Card {
	return &card.Card{
		Code:        code,
		Name:        name,
		RealName:    name,
		FactionCode: faction,
		TypeCode:    typ,
		PackCode:    "core",
		Quantity:    2,
		DeckLimit:   Int(2),
		XP:          Int(xp),
		Cost:        Int(cost),
		Traits:      traits,
	}
}

func weakness(code, name, pack string) *card.Card {
	return &card.Card{
		Code:        code,
		Name:        name,
		RealName:    name,
		FactionCode: card.FactionNeutral,
		TypeCode:    "treachery",
		SubtypeCode: card.SubtypeBasicWeakness,
		PackCode:    pack,
		Quantity:    1,
		DeckLimit:   Int(1),
	}
}

func allFactions() []string {
	return []string{"guardian", "seeker", "rogue", "mystic", "survivor", "neutral"}
}

// Database returns a fresh synthetic card database and lookup tables.
func Database() (*metadata.Metadata, *metadata.LookupTables) {
	meta := metadata.New()
	add := func(cards ...*card.Card) {
		for _, c := range cards {
			meta.Cards[c.Code] = c
		}
	}

	roland := investigator(Roland, "Roland Banks", "guardian", "Agency. Detective.", 30, []card.DeckOption{
		{Faction: []string{"guardian", "neutral"}, Level: &card.LevelRange{Min: 0, Max: 5}},
		{Faction: []string{"seeker"}, Level: &card.LevelRange{Min: 0, Max: 2}},
	})
	roland.DeckRequirements.Card = map[string]map[string]string{
		"01006": {"01006": "01006"},
		"01007": {"01007": "01007"},
	}

	jenny := investigator(Jenny, "Jenny Barnes", "rogue", "Drifter.", 30, []card.DeckOption{
		{Faction: []string{"rogue", "neutral"}, Level: &card.LevelRange{Min: 0, Max: 5}},
		{Faction: []string{"mystic"}, Level: &card.LevelRange{Min: 0, Max: 2}},
	})

	lola := investigator(Lola, "Lola Hayes", "neutral", "Performer.", 30, []card.DeckOption{
		{Faction: allFactions(), Level: &card.LevelRange{Min: 0, Max: 5}, AtLeast: &card.AtLeast{Min: 3}},
	})

	factionPicker := investigator(FactionPicker, "Faction Picker", "seeker", "Miskatonic.", 30, []card.DeckOption{
		{Faction: []string{"seeker", "neutral"}, Level: &card.LevelRange{Min: 0, Max: 5}},
		{FactionSelect: []string{"guardian", "rogue"}, Level: &card.LevelRange{Min: 0, Max: 0}, Limit: 5},
	})

	optionPicker := investigator(OptionPicker, "Option Picker", "survivor", "Wayfarer.", 30, []card.DeckOption{
		{Faction: []string{"survivor", "neutral"}, Level: &card.LevelRange{Min: 0, Max: 5}},
		{
			Name: "Secondary",
			OptionSelect: []card.DeckOption{
				{ID: "weapons", Name: "Weapons", Trait: []string{"weapon"}, Level: &card.LevelRange{Min: 0, Max: 0}, Limit: 2},
				{ID: "tactics", Name: "Tactics", Trait: []string{"tactic"}, Level: &card.LevelRange{Min: 0, Max: 1}},
			},
			Limit: 4,
		},
	})

	sizePicker := investigator(SizePicker, "Size Picker", "seeker", "Scholar.", 30, []card.DeckOption{
		{Faction: []string{"seeker", "neutral"}, Level: &card.LevelRange{Min: 0, Max: 5}},
		{Name: "Deck Size", DeckSizeSelect: []string{"30", "40", "50"}},
	})

	spiritualist := investigator(Spiritualist, "Spiritualist", "mystic", "Sorcerer.", 30, []card.DeckOption{
		{Faction: []string{"mystic", "neutral"}, Level: &card.LevelRange{Min: 0, Max: 5}},
	})
	spiritualist.SideDeckRequirements = &card.DeckRequirements{Size: 2}
	spiritualist.SideDeckOptions = []card.DeckOption{
		{Trait: []string{"spirit"}, Level: &card.LevelRange{Min: 0, Max: 5}},
	}

	add(roland, jenny, lola, factionPicker, optionPicker, sizePicker, spiritualist)

	special38 := player("01006", "Roland's .38 Special", card.FactionNeutral, card.TypeAsset, 0, 3, "Item. Weapon. Firearm.")
	special38.Quantity, special38.DeckLimit = 1, Int(1)
	special38.Restrictions = &card.Restrictions{Investigator: map[string]string{Roland: Roland}}

	coverUp := &card.Card{
		Code: "01007", Name: "Cover Up", RealName: "Cover Up", FactionCode: card.FactionNeutral,
		TypeCode: "treachery", SubtypeCode: card.SubtypeWeakness, PackCode: "core",
		Quantity: 1, DeckLimit: Int(1),
		Restrictions: &card.Restrictions{Investigator: map[string]string{Roland: Roland}},
	}

	automatic := player("01016", ".45 Automatic", "guardian", card.TypeAsset, 0, 4, "Item. Weapon. Firearm.")
	automatic.Slot = "Hand."
	automatic.SkillAgility = 1
	automatic.Text = "Uses (4 ammo).\nSpend 1 ammo: Fight."

	training := player("01017", "Physical Training", "guardian", card.TypeAsset, 0, 2, "Talent.")
	training.SkillWillpower, training.SkillCombat = 1, 1

	beatCop := player("01018", "Beat Cop", "guardian", card.TypeAsset, 0, 4, "Ally. Police.")
	beatCop.SkillCombat = 1
	beatCop.Slot = "Ally."

	evidence := player("01022", "Evidence!", "guardian", card.TypeEvent, 1, 1, "Insight.")
	evidence.SkillIntellect = 2

	glass := player("01030", "Magnifying Glass", "seeker", card.TypeAsset, 0, 1, "Item. Tool.")
	glass.SkillIntellect = 1

	deduction := player("01039", "Deduction", "seeker", card.TypeSkill, 0, 0, "Practiced.")
	deduction.Cost = nil
	deduction.SkillIntellect = 1

	encyclopedia := player("01042", "Encyclopedia", "seeker", card.TypeAsset, 3, 2, "Item. Tome.")

	switchblade := player("01044", "Switchblade", "rogue", card.TypeAsset, 0, 1, "Item. Weapon. Melee. Illicit.")
	switchblade.SkillAgility = 1

	shrivelling := player("01060", "Shrivelling", "mystic", card.TypeAsset, 0, 3, "Spell.")
	shrivelling.SkillCombat = 1

	knife := player("01086", "Knife", card.FactionNeutral, card.TypeAsset, 0, 1, "Item. Weapon. Melee.")
	knife.SkillCombat = 1

	cache := player("01088", "Emergency Cache", card.FactionNeutral, card.TypeEvent, 0, 0, "Supply.")

	flare := player("02115", "Flare", "survivor", card.TypeEvent, 1, 2, "Tactic.")
	flare.SkillWild = 1

	bigGun := player("02040", "Lightning Gun", "guardian", card.TypeAsset, 5, 8, "Item. Weapon. Firearm.")

	exceptional := player("04155", "Relic Hunter", "guardian", card.TypeAsset, 3, 0, "Talent.")
	exceptional.Exceptional = true

	multiclass := player("08079", "Bonnie's Ledger", "guardian", card.TypeAsset, 0, 2, "Item.")
	multiclass.Faction2Code = "seeker"

	myriadA := player("07009", "Gumption", "guardian", card.TypeSkill, 1, 0, "Innate.")
	myriadA.Myriad, myriadA.Quantity, myriadA.DeckLimit = true, 3, Int(3)
	myriadB := player("07309", "Gumption", "guardian", card.TypeSkill, 1, 0, "Innate.")
	myriadB.Name = "Gumption (Revised)"
	myriadB.Myriad, myriadB.Quantity, myriadB.DeckLimit = true, 3, Int(3)

	mirror := player("05313", "Hallowed Mirror", "mystic", card.TypeAsset, 0, 1, "Item. Relic. Blessed.")
	melody := player("05314", "Soothing Melody", card.FactionNeutral, card.TypeEvent, 0, 1, "Spell. Song.")
	melody.BondedTo, melody.BondedCount = "Hallowed Mirror", 3
	mirrorBack := player("05314b", "Mirror Back", card.FactionNeutral, card.TypeEvent, 0, 0, "")
	mirrorBack.Hidden = true

	charisma := player("06007", "Charisma", card.FactionNeutral, card.TypeAsset, 3, 0, "Talent.")
	charisma.Permanent = true
	charisma.Quantity, charisma.DeckLimit = 3, Int(3)

	armor := player("09022", "Hunter's Armor", "guardian", card.TypeAsset, 0, 4, "Item. Armor.")
	armor.Quantity, armor.DeckLimit = 1, Int(1)
	armor.Health, armor.Sanity = Int(2), Int(0)
	armor.Slot = "Body."
	armor.Text = "Customizable.\nHunter's Armor enters play with 2 charges."
	armor.CustomizationOptions = []card.CustomizationOption{
		{XP: 1, HealthChange: 2},
		{XP: 2, TextChange: card.TextAppend, TextEdit: "Protective Runes: reduce damage."},
		{XP: 1, Choice: card.ChoiceTrait},
		{XP: 3, TextChange: card.TextReplace, Position: 1, TextEdit: "Hunter's Armor enters play with 3 charges."},
	}

	spiritA := player("60402", "Wisp", card.FactionNeutral, card.TypeAsset, 0, 1, "Spirit.")
	spiritB := player("60403", "Wraith", card.FactionNeutral, card.TypeAsset, 0, 2, "Spirit. Geist.")

	fanMade := player("zz001", "Homebrew Blade", "guardian", card.TypeAsset, 0, 2, "Item. Weapon.")
	fanMade.PackCode = "fan1"
	fanMade.Official = Bool(false)

	reprint := player("60116", ".45 Automatic", "guardian", card.TypeAsset, 0, 4, "Item. Weapon. Firearm.")
	reprint.PackCode = "rcore"
	reprint.DuplicateOfCode = "01016"

	storyAsset := player("05085", "Sealed Tome", card.FactionNeutral, card.TypeAsset, 0, 0, "Item. Tome.")
	storyAsset.EncounterCode = "the_dream"

	amnesia := weakness("01097", "Amnesia", "core")
	eoep := []*card.Card{
		weakness("08130", "Frostbitten", "eoep"),
		weakness("08131", "Dread of the Unknown", "eoep"),
		weakness("08132", "Endless Night", "eoep"),
		weakness("08133", "Hypothermia", "eoep"),
	}
	detectiveOnly := weakness("08134", "Paranoid Inquiry", "eoep")
	detectiveOnly.Restrictions = &card.Restrictions{Trait: []string{"detective"}}

	add(special38, coverUp, automatic, training, beatCop, evidence, glass, deduction,
		encyclopedia, switchblade, shrivelling, knife, cache, flare, bigGun, exceptional,
		multiclass, myriadA, myriadB, mirror, melody, mirrorBack, charisma, armor,
		spiritA, spiritB, fanMade, reprint, storyAsset, amnesia, detectiveOnly)
	add(eoep...)

	meta.Packs["core"] = &metadata.Pack{Code: "core", Name: "Core Set", CycleCode: "core"}
	meta.Packs["rcore"] = &metadata.Pack{Code: "rcore", Name: "Revised Core Set", CycleCode: "core"}
	meta.Packs["eoep"] = &metadata.Pack{Code: "eoep", Name: "Edge of the Earth Investigator Expansion", CycleCode: "eoe"}
	meta.Packs["fan1"] = &metadata.Pack{Code: "fan1", Name: "Homebrew Pack", CycleCode: "fanc", Official: Bool(false)}
	meta.Cycles["core"] = &metadata.Cycle{Code: "core", Name: "Core"}
	meta.Cycles["eoe"] = &metadata.Cycle{Code: "eoe", Name: "Edge of the Earth"}
	meta.Cycles["fanc"] = &metadata.Cycle{Code: "fanc", Name: "Homebrew", Official: Bool(false)}

	meta.TabooSets[TabooSet] = &metadata.TabooSet{ID: TabooSet, Name: "Taboo 7"}
	meta.Taboos[metadata.TabooKey("01016", TabooSet)] = &card.Taboo{
		Code: "01016", TabooSetID: TabooSet, XP: Int(1), Text: strPtr("Uses (3 ammo)."),
	}
	meta.Taboos[metadata.TabooKey("01017", TabooSet)] = &card.Taboo{
		Code: "01017", TabooSetID: TabooSet, Exceptional: Bool(true), DeckLimit: Int(1),
	}

	lookup := metadata.NewLookupTables()
	lookup.Relations.Bonded = metadata.Index{
		"05313": {"05314": 1, "05314b": 1, "05313": 1},
	}
	lookup.Relations.Bound = metadata.Index{"05314": {"05313": 1}}
	lookup.Relations.RequiredCards = metadata.Index{Roland: {"01006": 1, "01007": 1}}
	lookup.Relations.RestrictedTo = metadata.Index{"01006": {Roland: 1}, "01007": {Roland: 1}}
	lookup.Relations.Duplicates = metadata.Index{"01016": {"60116": 1}, "60116": {"01016": 1}}
	lookup.Relations.Level = metadata.Index{"01016": {"missing": 1}}
	lookup.Uses = metadata.Index{"ammo": {"01016": 1, "60116": 1, "01006": 1}}
	lookup.SubtypeCode = metadata.Index{
		card.SubtypeBasicWeakness: {"01097": 1, "08130": 1, "08131": 1, "08132": 1, "08133": 1, "08134": 1},
	}

	return meta, lookup
}

func strPtr(s string) *string { return &s }
