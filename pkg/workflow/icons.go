package workflow

// System icons usable with Item.Icon.
const (
	iconRoot = "/System/Library/CoreServices/CoreTypes.bundle/Contents/Resources/"

	IconError   = iconRoot + "AlertStopIcon.icns"
	IconWarning = iconRoot + "AlertCautionIcon.icns"
	IconInfo    = iconRoot + "ToolbarInfo.icns"
	IconNote    = iconRoot + "AlertNoteIcon.icns"
	IconSync    = iconRoot + "Sync.icns"
	IconTrash   = iconRoot + "TrashIcon.icns"
)
