package entities

const accountJSON = `{
  "id": "23",
  "username": "alice",
  "acct": "alice@example.social",
  "display_name": "Alice",
  "note": "<p>bio</p>",
  "url": "https://example.social/@alice",
  "avatar": "https://example.social/a.png",
  "header": "https://example.social/h.png",
  "locked": false,
  "created_at": "2017-04-02T10:00:00.000Z",
  "followers_count": 10,
  "following_count": 4,
  "statuses_count": 120
}`

const statusJSON = `{
  "id": "1001",
  "uri": "https://example.social/users/alice/statuses/1001",
  "url": "https://example.social/@alice/1001",
  "account": ` + accountJSON + `,
  "in_reply_to_id": null,
  "in_reply_to_account_id": 7,
  "reblog": null,
  "content": "<p>hello <a href=\"https://example.social/tags/go\" class=\"mention hashtag\">#go</a></p>",
  "created_at": "2017-04-08T12:30:00.000Z",
  "reblogs_count": 3,
  "favourites_count": 5,
  "reblogged": null,
  "favourited": true,
  "sensitive": false,
  "spoiler_text": "",
  "visibility": "public",
  "media_attachments": [
    {"type": "image", "url": "https://files/1.png", "preview_url": "https://files/1s.png"}
  ],
  "mentions": [
    {"id": "7", "url": "https://example.social/@bob", "username": "bob", "acct": "bob"}
  ],
  "tags": [{"name": "go", "url": "https://example.social/tags/go"}],
  "application": {"name": "Web", "website": null}
}`
