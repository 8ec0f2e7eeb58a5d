package Checklist

// Item is one fixed pre-start inspection question. Items are declared once at
// process start and referenced by id from saved inspections; they are never
// persisted on their own.
type Item struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Question string `json:"question"`
	Critical bool   `json:"critical"`
}

// Items is the pre-start checklist in report order. Ordinal numbering in the
// compiled report follows this declaration order, not the order answers came in.
var Items = []Item{
	{ID: "tires", Category: "Tires & Wheels", Question: "Are all tires properly inflated and free from damage?", Critical: true},
	{ID: "lights", Category: "Lighting", Question: "Are all lights (headlights, taillights, indicators) working?", Critical: true},
	{ID: "brakes", Category: "Brakes", Question: "Do brakes respond properly with no unusual sounds?", Critical: true},
	{ID: "mirrors", Category: "Mirrors", Question: "Are all mirrors intact and properly adjusted?", Critical: false},
	{ID: "fluid-leaks", Category: "Fluids", Question: "Are there any fluid leaks under the vehicle?", Critical: true},
	{ID: "engine", Category: "Engine", Question: "Does the engine start smoothly without warning lights?", Critical: true},
	{ID: "body", Category: "Body & Frame", Question: "Is the truck body free from new dents, scratches, or damage?", Critical: false},
	{ID: "cargo", Category: "Cargo Area", Question: "Is the cargo area clean and secure?", Critical: false},
	{ID: "horn", Category: "Safety Equipment", Question: "Is the horn functioning properly?", Critical: true},
	{ID: "wipers", Category: "Wipers & Washers", Question: "Are wipers and washers working effectively?", Critical: false},
}

// ByID returns the checklist item with the given id.
func ByID(id string) (Item, bool) {
	for _, item := range Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// IsValidID reports whether id names a checklist item.
func IsValidID(id string) bool {
	_, ok := ByID(id)
	return ok
}
