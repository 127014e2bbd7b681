package bot

const (
	helpText = "⚽ <b>Hello! I'm your football bot.</b>\n\n" +
		"<b>Commands:</b>\n" +
		"/events - list active games\n" +
		"/next - show the nearest game\n" +
		"/schedule - upcoming auto-created games\n" +
		"/addevent YYYY-MM-DD HH:MM [place] - add custom event (admin)\n" +
		"/delevent EVENT_ID - delete an event by ID (admin)\n" +
		"/setplace PLACE - change place of the nearest game (admin)\n" +
		"/settime YYYY-MM-DD HH:MM - change time of the nearest game (admin)\n" +
		"/myid - show your Telegram ID\n" +
		"/chatid - show this chat ID"

	noGamesText       = "No active games."
	eventDeletedText  = "Event deleted."
	eventNotFoundText = "Event not found."
	storageFailedText = "Something went wrong, please try again."
	tooManyClicksText = "Too many clicks, slow down."
	unknownActionText = "Unknown action."
	updatedText       = "Updated!"
	addedExtraFormat  = "Added +%d"

	usageAddEvent = "Usage: /addevent YYYY-MM-DD HH:MM [place]"
	usageDelEvent = "Usage: /delevent EVENT_ID"
	usageSetPlace = "Usage: /setplace PLACE"
	usageSetTime  = "Usage: /settime YYYY-MM-DD HH:MM"

	invalidAddEvent = "Invalid format. Use: /addevent YYYY-MM-DD HH:MM [place]"
	invalidSetTime  = "Invalid format. Use: /settime YYYY-MM-DD HH:MM"

	myIDFormat       = "Your Telegram ID is: <code>%d</code>"
	chatIDFormat     = "Chat ID is: <code>%d</code>"
	createdFormat    = "Game created: <code>%s</code>"
	scheduleHeader   = "📅 <b>Upcoming auto-created games</b>:"
	placeUpdatedText = "📍 Place updated."
	timeUpdatedText  = "🕒 Time updated."
)
