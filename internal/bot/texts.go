package bot

// User-facing texts. HTML parse mode.

const (
	textStartNewUser = "🎄 Привет! Это бот игры «Тайный Санта».\n\n" +
		"Зарегистрируйтесь, чтобы принять участие: бот спросит ФИО, отдел и телефон, " +
		"после чего анкету проверит организатор."

	textProfileTemplate = "🧾 Ваша анкета:\n\n" +
		"ФИО: <b>%s</b>\n" +
		"Отдел: <b>%s</b>\n" +
		"Телефон: <b>%s</b>\n" +
		"Участвует: <b>%s</b>\n" +
		"Подтверждена: <b>%s</b>"

	textProfileNotFound = "Вы ещё не зарегистрированы. Отправьте /start, чтобы принять участие."

	textRegAskFullName = "Введите ФИО полностью, например: <b>Иванов Иван Иванович</b>."
	textRegFullNameBad = "ФИО должно содержать только буквы кириллицы, пробелы и дефисы.\n" +
		"Пример: <b>Иванов Иван Иванович</b>."
	textRegAskDepartment = "Укажите ваш отдел, например: <b>Отдел разработки</b>."
	textRegDepartmentTooShort = "Название отдела слишком короткое. Уточните, пожалуйста, например: " +
		"<b>Отдел маркетинга</b> или <b>Отдел продаж</b>."
	textRegDepartmentLooksLikePhone = "Похоже, вы указали номер телефона.\n" +
		"Здесь нужно написать название отдела, например: <b>Отдел разработки</b>."
	textRegAskPhone = "Укажите номер телефона в формате <b>+7XXXXXXXXXX</b> или <b>8XXXXXXXXXX</b>."
	textRegPhoneBad = "Номер не похож на российский номер телефона.\n" +
		"Укажите, пожалуйста, номер в формате <b>+7XXXXXXXXXX</b> или <b>8XXXXXXXXXX</b>."
	textRegFinished = "✅ Анкета сохранена и отправлена на проверку организатору.\n" +
		"Вы получите сообщение, когда её подтвердят."
	textRegCancelled = "Регистрация отменена. Отправьте /start, когда передумаете."

	textLeaveConfirm = "Вы вышли из игры. Если передумаете — заново пройдите регистрацию через /start."

	textApproved = "✅ Ваша анкета в игре «Тайный Санта» подтверждена.\n" +
		"Скоро вы получите информацию о получателе подарка."
	textRejected = "❌ Ваша анкета в игре «Тайный Санта» отклонена.\n" +
		"Свяжитесь, пожалуйста, с организатором для уточнения причин."

	textAdminMenu = "Меню администратора:\n" +
		"• 🎲 Провести жеребьёвку — команда /draw или кнопка «Провести жеребьёвку».\n" +
		"• 📨 Разослать результаты — команда /notify или кнопка «Разослать результаты» (напоминание).\n" +
		"• 👥 Участники — показать всех активных.\n" +
		"• ✅ Подтверждённые — только прошедшие валидацию.\n" +
		"• 📢 Общая рассылка — отправить/переслать любое сообщение всем пользователям из таблицы."

	textAdminNewApplication = "🆕 Новая анкета участника Тайного Санты\n\n" +
		"ФИО: <b>%s</b>\n" +
		"Отдел: <b>%s</b>\n" +
		"Телефон: <b>%s</b>\n" +
		"Username: @%s\n" +
		"Telegram ID: <code>%d</code>\n\n" +
		"Выберите действие:"

	textDrawInsufficient = "Жеребьёвка невозможна: подтверждённых участников меньше двух."
	textDrawConflict     = "Похоже, жеребьёвка уже проводилась (у некоторых участников уже есть получатель).\n" +
		"Во избежание конфликтов повторный запуск /draw заблокирован."
	textDrawDone = "Жеребьёвка завершена.\nУчастников в игре: %d.\nНачинаю рассылку результатов…"

	textNotifyReport   = "Рассылка завершена.\nВсего участников: %d\nУведомлено: %d\nОшибок отправки: %d"
	textReminderReport = "Напоминание отправлено.\nСообщений отправлено: %d\nОшибок отправки: %d"

	textBroadcastStart = "📢 Режим общей рассылки.\n\n" +
		"Отправьте сообщение, которое нужно разослать всем пользователям из таблицы.\n" +
		"Можно переслать сообщение из другого чата, с медиа, кнопками и т.д.\n\n" +
		"Для отмены напишите «Отмена» или используйте команду /cancel_broadcast."
	textBroadcastCancelled = "Режим общей рассылки отменён."
	textBroadcastEmpty     = "В таблице нет ни одного участника с Telegram ID."
	textBroadcastBegin     = "Начинаю рассылку сообщения всем пользователям из таблицы.\nПолучателей: %d."
	textBroadcastReport    = "Общая рассылка завершена.\nСообщений успешно отправлено: %d\nОшибок отправки: %d"

	textNoActiveParticipants    = "Активных участников нет."
	textNoValidatedParticipants = "Подтверждённых активных участников нет."
	textListAllTitle            = "👥 Активные участники:\nВсего: <b>%d</b>."
	textListValidatedTitle      = "✅ Подтверждённые участники:\nВсего: <b>%d</b>."

	textQuizNoActive  = "Сейчас нет активной викторины. Загляните позже!"
	textQuizAlready   = "Вы уже отвечали на этот вопрос 🙂"
	textQuizCorrect   = "🎉 Верно! Вы заработали %d очков."
	textQuizIncorrect = "Увы, неверно. Правильный ответ: <b>%s</b>."
	textQuizAccepted  = "Ответ принят!"
	textNewPollUsage  = "Формат: /newpoll Вопрос | вариант 1 | вариант 2 [| ...]"
	textNewPollDone   = "Викторина создана (статус «draft»).\nID: <code>%s</code>\n" +
		"Правильный индекс и очки проставьте в таблице, затем поменяйте статус на «active»."

	textSheetsUnavailable = "❌ Не удалось получить список участников из Google Sheets.\n" +
		"Похоже, временная проблема с подключением к Google API.\n" +
		"Попробуйте повторить попытку чуть позже."
	textUnexpectedError = "❌ Произошла непредвиденная ошибка. Детали смотрите в логах сервера."

	textYes = "Да"
	textNo  = "Нет"
)

func formatBoolRu(v bool) string {
	if v {
		return textYes
	}
	return textNo
}
